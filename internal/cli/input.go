package cli

import (
	"fmt"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// readPassword is a test seam over term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prompts the user and reads a single line of input.
func (a *App) GetSimpleText(prompt string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", prompt)
	line, err := a.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prompts for a password without echoing the input.
func (a *App) GetPassword(prompt string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", prompt)
	b, err := readPassword(int(syscall.Stdin))
	fmt.Fprintln(a.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// GetFloat prompts for a number and keeps the default when the user
// submits an empty line.
func (a *App) GetFloat(prompt string, def float64) (float64, error) {
	s, err := a.GetSimpleText(fmt.Sprintf("%s [%v]", prompt, def))
	if err != nil {
		return 0, err
	}
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return v, nil
}

// GetInt prompts for an integer and keeps the default when the user
// submits an empty line.
func (a *App) GetInt(prompt string, def int) (int, error) {
	s, err := a.GetSimpleText(fmt.Sprintf("%s [%d]", prompt, def))
	if err != nil {
		return 0, err
	}
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", s, err)
	}
	return v, nil
}
