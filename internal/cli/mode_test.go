package cli_test

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/Egor213/LogParser/internal/cli"
	"github.com/stretchr/testify/assert"
)

func TestSelectMode(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		want        cli.Mode
		wantRetries int
		wantErr     bool
	}{
		{name: "console", input: "console\n", want: cli.ModeConsole},
		{name: "api with spaces and case", input: "  API \n", want: cli.ModeAPI},
		{name: "retries until valid", input: "web\n\napi\n", want: cli.ModeAPI, wantRetries: 2},
		{name: "last line without newline", input: "console", want: cli.ModeConsole},
		{name: "input ends", input: "web\n", wantRetries: 1, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := cli.SelectMode(bufio.NewReader(strings.NewReader(tc.input)), &out)

			assert.Equal(t, tc.wantRetries, strings.Count(out.String(), "Invalid choice. Try again."))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
