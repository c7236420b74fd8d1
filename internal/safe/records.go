package safe

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// The decrypted safe is a newline-separated log of records:
//
//	<password> <username>
//	<password> <username>
//	mtime:<unix-epoch-seconds>
//
// Records are kept in insertion order; nothing is ever sorted. Every write
// strips noise (blank lines, stale mtime lines) and appends a fresh mtime
// stamp, so a committed safe carries exactly one mtime line and no blanks.

// Entry is one decrypted record: a username and its password. An empty
// password means the entry is being cleared rather than stored.
type Entry struct {
	Username string
	Password string
}

// Line returns the on-safe representation of the entry.
func (e Entry) Line() string {
	return e.Password + " " + e.Username
}

var mtimeLine = regexp.MustCompile(`^mtime:\d+$`)

// ParseRecords splits decrypted plaintext into lines. There is no structural
// validation: a malformed safe yields garbage lines, which the filters below
// tolerate. A single trailing newline does not produce an empty final line.
func ParseRecords(plaintext []byte) []string {
	s := strings.TrimSuffix(string(plaintext), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// RenderRecords joins lines back into plaintext with a trailing newline.
func RenderRecords(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// lastToken returns the final whitespace-separated token of a line, or ""
// for blank lines.
func lastToken(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// FilterOutUser removes every line whose trailing token equals username
// exactly (case-sensitive). Matching the whole final token, rather than a
// substring, keeps usernames that are suffixes of one another apart.
// An empty username is a no-op: a write with no target must never
// blanket-delete.
func FilterOutUser(lines []string, username string) []string {
	if username == "" {
		return lines
	}
	out := lines[:0:0]
	for _, line := range lines {
		if lastToken(line) == username {
			continue
		}
		out = append(out, line)
	}
	return out
}

// MatchUser returns the lines whose trailing token equals username exactly.
// Used by the read path; the mtime line never matches a username.
func MatchUser(lines []string, username string) []string {
	out := lines[:0:0]
	for _, line := range lines {
		if lastToken(line) == username {
			out = append(out, line)
		}
	}
	return out
}

// FilterNoise removes blank and whitespace-only lines and any existing
// mtime line. Anything else passes through untouched.
func FilterNoise(lines []string) []string {
	out := lines[:0:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if mtimeLine.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// AppendEntry appends the entry's record line. An entry with an empty
// password represents a clear and appends nothing: committed safes never
// contain blank placeholder lines.
func AppendEntry(lines []string, e Entry) []string {
	if e.Password == "" {
		return lines
	}
	return append(lines, e.Line())
}

// Stamp appends the single mtime line recording the write time. Callers must
// have run FilterNoise first so exactly one mtime line survives.
func Stamp(lines []string, now time.Time) []string {
	return append(lines, fmt.Sprintf("mtime:%d", now.Unix()))
}
