package transfer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PromptPassphrase returns a PassphraseFunc that asks on the terminal
// without echo. With confirm it asks twice and requires a match.
func PromptPassphrase(in *os.File, out io.Writer, confirm bool) PassphraseFunc {
	reader := bufio.NewReader(in)
	return func() (string, error) {
		pass, err := readSecret(in, reader, out, "Passphrase: ")
		if err != nil {
			return "", err
		}
		if pass == "" {
			return "", errors.New("passphrase cannot be empty")
		}
		if !confirm {
			return pass, nil
		}
		again, err := readSecret(in, reader, out, "Confirm passphrase: ")
		if err != nil {
			return "", err
		}
		if again != pass {
			return "", errors.New("passphrases do not match")
		}
		return pass, nil
	}
}

// readSecret disables echo on a terminal and falls back to a plain line
// read when input is piped.
func readSecret(in *os.File, reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		return string(b), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
