// Package parser turns access-log lines into records using a regular
// expression whose capture groups map positionally onto record fields.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/Egor213/LogParser/internal/domain"
)

// CommonLogFormat matches the NCSA common log format:
// host logname user [timestamp] "request" status bytes.
const CommonLogFormat = `(\S+) (\S+) (\S+) \[([^\]]+)\] "([^"]*)" (\d{3}) (\S+)`

type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

type Parser struct {
	pattern string
	re      *regexp.Regexp
}

// New compiles pattern. Lines only match when the pattern matches at their start.
func New(pattern string) (*Parser, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: pattern, Err: err}
	}

	return &Parser{pattern: pattern, re: re}, nil
}

func (p *Parser) Pattern() string {
	return p.pattern
}

// Groups returns the number of capture groups in the pattern.
func (p *Parser) Groups() int {
	return p.re.NumSubexp()
}

// ParseLine reports false when the pattern does not match at the start of line.
func (p *Parser) ParseLine(line string) (domain.Record, bool) {
	line = strings.TrimRightFunc(line, unicode.IsSpace)

	// Leftmost-first search returns a match at 0 whenever one exists there.
	loc := p.re.FindStringSubmatchIndex(line)
	if loc == nil || loc[0] != 0 {
		return domain.Record{}, false
	}

	values := make([]*string, 0, p.re.NumSubexp())
	for i := 2; i+1 < len(loc); i += 2 {
		if loc[i] < 0 {
			values = append(values, nil)
			continue
		}
		v := line[loc[i]:loc[i+1]]
		values = append(values, &v)
	}

	return domain.NewRecord(values...), true
}

func (p *Parser) Parse(lines []string) []domain.Record {
	records := make([]domain.Record, 0, len(lines))
	for _, line := range lines {
		if rec, ok := p.ParseLine(line); ok {
			records = append(records, rec)
		}
	}
	return records
}

// ParseReader parses r line by line. Lines have no length limit.
func (p *Parser) ParseReader(r io.Reader) ([]domain.Record, error) {
	br := bufio.NewReader(r)

	var records []domain.Record
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if rec, ok := p.ParseLine(line); ok {
				records = append(records, rec)
			}
		}
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// Parse compiles pattern and parses lines with it.
func Parse(lines []string, pattern string) ([]domain.Record, error) {
	p, err := New(pattern)
	if err != nil {
		return nil, err
	}
	return p.Parse(lines), nil
}
