package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// TerminalPrompt reads secrets from stdin with echo disabled, printing labels to out.
func TerminalPrompt(stdin *os.File, out io.Writer) PasswordPrompt {
	return func(label string) (string, error) {
		fmt.Fprint(out, label)
		secret, err := readSecretNoEcho(stdin)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return secret, nil
	}
}

func readSecretLine(reader io.Reader) (string, error) {
	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
