package config_test

import (
	"path/filepath"
	"testing"

	"github.com/Egor213/LogParser/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLegacy(t *testing.T) {
	testCases := []struct {
		name          string
		content       string
		wantDirectory string
		wantPattern   string
		wantErr       bool
	}{
		{
			name:          "unix file",
			content:       "directory = \"/var/log/access.log\"\npattern = ^(\\S+) (\\S+)\n",
			wantDirectory: "/var/log/access.log",
			wantPattern:   `^(\S+) (\S+)`,
		},
		{
			name:          "windows path and line endings",
			content:       "directory = \"D:\\data\\access.log\"\r\npattern = (\\d+)\r\n",
			wantDirectory: "D:/data/access.log",
			wantPattern:   `(\d+)`,
		},
		{
			name:    "missing pattern",
			content: "directory = \"/var/log/access.log\"\n",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "cfg.txt", tc.content)

			directory, pattern, err := config.LoadLegacy(path)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantDirectory, directory)
			assert.Equal(t, tc.wantPattern, pattern)
		})
	}
}

func TestLoadLegacy_MissingFile(t *testing.T) {
	_, _, err := config.LoadLegacy(filepath.Join(t.TempDir(), "cfg.txt"))
	assert.Error(t, err)
}
