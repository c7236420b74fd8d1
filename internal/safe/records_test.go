package safe_test

import (
	"reflect"
	"testing"
	"time"

	"pwsafe/internal/safe"
)

func TestParseRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
		want  []string
	}{
		{name: "empty", input: nil, want: nil},
		{name: "single line with trailing newline", input: []byte("pw alice\n"), want: []string{"pw alice"}},
		{name: "single line without trailing newline", input: []byte("pw alice"), want: []string{"pw alice"}},
		{
			name:  "records plus mtime",
			input: []byte("pw alice\npw2 bob\nmtime:1700000000\n"),
			want:  []string{"pw alice", "pw2 bob", "mtime:1700000000"},
		},
		{
			name:  "interior blank lines preserved",
			input: []byte("pw alice\n\npw2 bob\n"),
			want:  []string{"pw alice", "", "pw2 bob"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := safe.ParseRecords(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseRecords() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderRecords_RoundTrip(t *testing.T) {
	t.Parallel()

	lines := []string{"pw alice", "pw2 bob", "mtime:1700000000"}
	got := safe.ParseRecords(safe.RenderRecords(lines))
	if !reflect.DeepEqual(got, lines) {
		t.Errorf("Parse(Render(lines)) = %q, want %q", got, lines)
	}

	if safe.RenderRecords(nil) != nil {
		t.Error("RenderRecords(nil) should be nil")
	}
}

func TestFilterOutUser(t *testing.T) {
	t.Parallel()

	lines := []string{"s3cret alice", "hunter2 bob", "old alice", "x alicebob"}

	tests := []struct {
		name     string
		username string
		want     []string
	}{
		{
			name:     "removes all lines for the username",
			username: "alice",
			want:     []string{"hunter2 bob", "x alicebob"},
		},
		{
			name:     "matches the whole trailing token, not a suffix",
			username: "bob",
			want:     []string{"s3cret alice", "old alice", "x alicebob"},
		},
		{
			name:     "empty username is a no-op",
			username: "",
			want:     lines,
		},
		{
			name:     "unknown username leaves lines untouched",
			username: "carol",
			want:     lines,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := safe.FilterOutUser(lines, tt.username)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterOutUser(%q) = %q, want %q", tt.username, got, tt.want)
			}
		})
	}

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()
		once := safe.FilterOutUser(lines, "alice")
		twice := safe.FilterOutUser(once, "alice")
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("second filter changed result: %q vs %q", once, twice)
		}
	})

	t.Run("is case-sensitive", func(t *testing.T) {
		t.Parallel()
		got := safe.FilterOutUser([]string{"pw Alice"}, "alice")
		if len(got) != 1 {
			t.Errorf("FilterOutUser should not match a different case, got %q", got)
		}
	})
}

func TestMatchUser(t *testing.T) {
	t.Parallel()

	lines := []string{"s3cret alice", "hunter2 bob", "old alice", "mtime:1700000000"}

	t.Run("returns only the username's lines", func(t *testing.T) {
		t.Parallel()
		got := safe.MatchUser(lines, "alice")
		want := []string{"s3cret alice", "old alice"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("MatchUser() = %q, want %q", got, want)
		}
	})

	t.Run("never matches the mtime line", func(t *testing.T) {
		t.Parallel()
		got := safe.MatchUser(lines, "mtime:1700000000")
		if len(got) != 1 || got[0] != "mtime:1700000000" {
			// The mtime line is its own trailing token; only an exact,
			// deliberate query for it can match.
			t.Errorf("MatchUser(mtime line) = %q", got)
		}
		if got := safe.MatchUser(lines, "1700000000"); len(got) != 0 {
			t.Errorf("MatchUser(%q) = %q, want none", "1700000000", got)
		}
	})
}

func TestFilterNoise(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "removes blank and whitespace-only lines",
			input: []string{"pw alice", "", "  \t", "pw2 bob"},
			want:  []string{"pw alice", "pw2 bob"},
		},
		{
			name:  "removes every mtime line",
			input: []string{"mtime:1", "pw alice", "mtime:1700000000"},
			want:  []string{"pw alice"},
		},
		{
			name:  "keeps malformed mtime-ish garbage",
			input: []string{"mtime:abc", "mtime:12 tail", "pw alice"},
			want:  []string{"mtime:abc", "mtime:12 tail", "pw alice"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := safe.FilterNoise(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterNoise() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppendEntry(t *testing.T) {
	t.Parallel()

	t.Run("appends the record line", func(t *testing.T) {
		t.Parallel()
		got := safe.AppendEntry([]string{"pw alice"}, safe.Entry{Username: "bob", Password: "hunter2"})
		want := []string{"pw alice", "hunter2 bob"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("AppendEntry() = %q, want %q", got, want)
		}
	})

	t.Run("empty password appends nothing", func(t *testing.T) {
		t.Parallel()
		got := safe.AppendEntry([]string{"pw alice"}, safe.Entry{Username: "bob"})
		want := []string{"pw alice"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("AppendEntry() = %q, want %q", got, want)
		}
	})
}

func TestStamp(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)
	got := safe.Stamp([]string{"pw alice"}, now)
	want := []string{"pw alice", "mtime:1718461845"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Stamp() = %q, want %q", got, want)
	}
}

func TestFilterNoiseThenStamp_ExactlyOneMtime(t *testing.T) {
	t.Parallel()

	lines := []string{"pw alice", "mtime:1", "", "mtime:2", "pw2 bob"}
	lines = safe.FilterNoise(lines)
	lines = safe.Stamp(lines, time.Unix(1700000000, 0))

	count := 0
	for _, line := range lines {
		if line == "mtime:1700000000" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("mtime lines = %d, want exactly 1 (lines: %q)", count, lines)
	}
}
