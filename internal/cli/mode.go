package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type Mode string

const (
	ModeConsole Mode = "console"
	ModeAPI     Mode = "api"
)

// SelectMode asks until the answer is console or api. It fails only when
// input ends without a valid answer.
func SelectMode(in *bufio.Reader, out io.Writer) (Mode, error) {
	for {
		fmt.Fprint(out, "Use the console interface or the API? (console/api): ")
		line, err := in.ReadString('\n')

		switch mode := Mode(strings.ToLower(strings.TrimSpace(line))); mode {
		case ModeConsole, ModeAPI:
			return mode, nil
		}

		if err != nil {
			return "", fmt.Errorf("no interface selected: %w", err)
		}
		fmt.Fprintln(out, "Invalid choice. Try again.")
	}
}
