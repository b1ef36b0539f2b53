package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"VideoVault/internal/app"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// weakScore is the zxcvbn score below which encode warns.
const weakScore = 2

// isTerminal returns true if stdin is a terminal (not piped/redirected).
var isTerminal = func() bool {
	return term.IsTerminal(int(syscall.Stdin))
}

// readPasswordSecure reads a password from stdin without echo.
// Falls back to buffered read if stdin is not a terminal.
func readPasswordSecure(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	if !isTerminal() {
		return ReadPasswordFromStdin()
	}

	// Terminal mode: disable echo
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}

// ReadPasswordInteractive prompts for a password. An empty answer means no
// password. If confirm is true, a non-empty answer is asked for twice.
func ReadPasswordInteractive(confirm bool) (string, error) {
	password, err := readPasswordSecure("Password (empty for none): ")
	if err != nil {
		return "", err
	}

	if confirm && password != "" {
		again, err := readPasswordSecure("Confirm password: ")
		if err != nil {
			return "", err
		}
		if password != again {
			return "", ErrPasswordMismatch
		}
	}

	return password, nil
}

// ReadPasswordFromStdin reads password from stdin (for piped input with -P flag).
func ReadPasswordFromStdin() (string, error) {
	reader := bufio.NewReader(os.Stdin)
	pw, err := reader.ReadString('\n')
	if err != nil && pw == "" {
		return "", fmt.Errorf("reading password from stdin: %w", err)
	}
	pw = strings.TrimSuffix(pw, "\n")
	pw = strings.TrimSuffix(pw, "\r")
	return pw, nil
}

// resolvePassword picks the password source: piped stdin, the flag, or an
// interactive prompt when stdin is a terminal.
func resolvePassword(flag string, fromStdin, confirm bool) (string, error) {
	switch {
	case fromStdin:
		return ReadPasswordFromStdin()
	case flag != "":
		return flag, nil
	case isTerminal():
		return ReadPasswordInteractive(confirm)
	}
	return "", nil
}

// weakPasswordWarning returns a warning for a non-empty weak password.
func weakPasswordWarning(password string) string {
	if password == "" {
		return ""
	}
	if score := app.PasswordStrength(password); score < weakScore {
		return fmt.Sprintf("Warning: weak password (strength %d/4)", score)
	}
	return ""
}
