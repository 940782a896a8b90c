package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

var errNoInput = errors.New("no input")

// readText returns the joined args, or reads the text from the command's
// input: without echo when it is the terminal, to EOF otherwise.
func readText(cmd *cobra.Command, args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && isTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt+": ")
		b, err := readPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return nonEmpty(string(b))
	}

	b, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return nonEmpty(string(b))
}

func nonEmpty(s string) (string, error) {
	s = strings.TrimRight(s, "\r\n")
	if strings.TrimSpace(s) == "" {
		return "", errNoInput
	}
	return s, nil
}
