// Package terminal reads secrets interactively without echoing them.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"pwsafe/internal/safe"
)

// ReadPassphrase prompts on stderr and reads the passphrase from stdin.
// When stdin is a terminal the input is masked; otherwise a single line is
// read, so the tool stays scriptable with piped input. Empty input aborts
// with safe.ErrNoPassphrase.
func ReadPassphrase(prompt string) (string, error) {
	s, err := readSecret(prompt)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", safe.ErrNoPassphrase
	}
	return s, nil
}

// ReadSecret prompts on stderr and reads a secret from stdin without
// echoing. Unlike ReadPassphrase, empty input is allowed: an empty password
// on a write clears the entry.
func ReadSecret(prompt string) (string, error) {
	return readSecret(prompt)
}

func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
