package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	legacyDirectory = regexp.MustCompile(`directory\s*=\s*"(.*?)"`)
	legacyPattern   = regexp.MustCompile(`pattern\s*=\s*(.*)`)
)

// LoadLegacy reads the plain key = value file of older deployments:
//
//	directory = "C:\logs\access.log"
//	pattern = ^(\S+) (\S+) ...
//
// Backslashes in the directory are turned into forward slashes.
func LoadLegacy(path string) (directory, pattern string, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}

	dm := legacyDirectory.FindSubmatch(content)
	pm := legacyPattern.FindSubmatch(content)
	if dm == nil || pm == nil {
		return "", "", fmt.Errorf("keys 'directory' or 'pattern' not found in %s", path)
	}

	directory = strings.ReplaceAll(string(dm[1]), `\`, "/")
	pattern = strings.TrimRight(string(pm[1]), "\r")
	return directory, pattern, nil
}
