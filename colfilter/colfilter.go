// Package colfilter keeps the rows of a table whose value in one column
// exceeds a minimum, and optionally projects a subset of columns.
package colfilter

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/otutab"
	"github.com/carbocation/pfx"
)

// DelimAuto asks Filter to sniff the delimiter from the input.
const DelimAuto = "auto"

type Options struct {
	// Site is the 1-based column that is tested.
	Site int

	// Mins is the exclusive lower bound on the tested value.
	Mins float64

	// Prints is a comma-separated list of 1-based columns to output. Empty
	// outputs every column.
	Prints string

	// Delim splits input rows. Empty splits on runs of whitespace; DelimAuto
	// sniffs a single-character delimiter.
	Delim string
}

// ParseColumns turns "1,3" into zero-based indices {0, 2}.
func ParseColumns(prints string) ([]int, error) {
	prints = strings.TrimSpace(prints)
	if prints == "" {
		return nil, nil
	}

	var out []int
	for _, field := range strings.Split(prints, ",") {
		col, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", field, err)
		}
		if col < 1 {
			return nil, fmt.Errorf("column %d: columns are 1-based", col)
		}
		out = append(out, col-1)
	}

	return out, nil
}

func splitter(delim string, input []byte) func(string) []string {
	switch delim {
	case "":
		return strings.Fields
	case DelimAuto:
		delim = string(otutab.DetermineDelimiterBytes(input))
	case `\t`:
		delim = "\t"
	}

	return func(line string) []string {
		return strings.Split(line, delim)
	}
}

// Filter writes the passing rows of r to w, tab-joined, and returns how many
// were written. Rows whose tested column is missing or not a number are
// skipped.
func Filter(r io.Reader, w io.Writer, opts Options) (int, error) {
	cols, err := ParseColumns(opts.Prints)
	if err != nil {
		return 0, err
	}
	site := opts.Site - 1

	input, err := io.ReadAll(r)
	if err != nil {
		return 0, pfx.Err(err)
	}

	written := 0
	err = otutab.ReadRows(bytes.NewReader(input), splitter(opts.Delim, input), func(line int, fields []string) error {
		if site < 0 || site >= len(fields) {
			return nil
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(fields[site]), 64)
		if err != nil || value <= opts.Mins {
			return nil
		}

		out := fields
		if cols != nil {
			out = make([]string, len(cols))
			for i, c := range cols {
				if c >= len(fields) {
					return fmt.Errorf("line %d: column %d requested but the row has %d", line, c+1, len(fields))
				}
				out[i] = fields[c]
			}
		}

		if _, err := fmt.Fprintln(w, strings.Join(out, "\t")); err != nil {
			return err
		}
		written++

		return nil
	})

	return written, err
}
