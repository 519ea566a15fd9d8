// Package console is the interactive query prompt.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	logginghelper "github.com/Egor213/LogParser/internal/controller/common/logging"
	"github.com/Egor213/LogParser/internal/domain"
	"github.com/Egor213/LogParser/internal/service"
)

const (
	source    = "console"
	nullValue = "-"
)

var errQuit = errors.New("quit")

type Console struct {
	querier service.Querier
	in      *bufio.Reader
	out     io.Writer
}

// New reads answers from in. Pass the same *bufio.Reader used by earlier
// prompts so no buffered input is lost.
func New(q service.Querier, in io.Reader, out io.Writer) *Console {
	r, ok := in.(*bufio.Reader)
	if !ok {
		r = bufio.NewReader(in)
	}
	return &Console{querier: q, in: r, out: out}
}

// Run prompts for queries until "exit", "quit", end of input or ctx is done.
// Failed queries are reported and the prompt continues.
func (c *Console) Run(ctx context.Context) error {
	c.printLegend()

	for ctx.Err() == nil {
		req, err := c.readRequest()
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			continue
		}

		logginghelper.LogQueryReceived(source, req)

		result, err := c.querier.Query(ctx, req)
		if err != nil {
			logginghelper.LogQueryError(source, req, err)
			fmt.Fprintf(c.out, "Query failed: %v\n", err)
			continue
		}

		logginghelper.LogQueryServed(source, req, len(result.Rows))
		c.printResult(result)
	}

	return ctx.Err()
}

func (c *Console) printLegend() {
	fmt.Fprintln(c.out, "Available fields:")
	for _, f := range domain.Fields() {
		fmt.Fprintf(c.out, "  %-9s - %s\n", f, f.Describe())
	}
}

func (c *Console) readRequest() (service.QueryRequest, error) {
	fields, err := c.ask("Fields to show, comma separated (* for all, exit to quit): ")
	if err != nil {
		return service.QueryRequest{}, err
	}
	switch strings.ToLower(fields) {
	case "exit", "quit":
		return service.QueryRequest{}, errQuit
	}

	req := service.QueryRequest{Fields: fields}

	answer, err := c.ask("Do you need a time range? (yes/no): ")
	if err != nil {
		return service.QueryRequest{}, err
	}
	if !isYes(answer) {
		return req, nil
	}

	var parts [4]string
	prompts := [4]string{
		"Start date (DD/Mon/YYYY): ",
		"End date (DD/Mon/YYYY): ",
		"Start time (HH:MM:SS): ",
		"End time (HH:MM:SS): ",
	}
	for i, prompt := range prompts {
		if parts[i], err = c.ask(prompt); err != nil {
			return service.QueryRequest{}, err
		}
	}

	req.Range = service.RangeFromParts(parts[0], parts[2], parts[1], parts[3])
	if req.Range == nil {
		return service.QueryRequest{}, &service.QueryError{Cause: "start and end date and time are all required"}
	}
	return req, nil
}

func (c *Console) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) printResult(result domain.QueryResult) {
	fmt.Fprintln(c.out, "Results:")

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	header := make([]string, len(result.Fields))
	for i, f := range result.Fields {
		header[i] = strings.ToUpper(f.String())
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, row := range result.Rows {
		cells := make([]string, len(result.Fields))
		for i, f := range result.Fields {
			cells[i] = nullValue
			if v := row[f.String()]; v != nil {
				cells[i] = *v
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()

	fmt.Fprintf(c.out, "(%d rows)\n", len(result.Rows))
}

func isYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "yes", "y", "да", "д":
		return true
	}
	return false
}
