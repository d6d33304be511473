package otutab

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RowFunc receives the 1-based line number and the fields of one data row.
type RowFunc func(line int, fields []string) error

// ReadRows walks r line by line. Each line is trimmed of surrounding
// whitespace; blank lines and lines starting with '#' are skipped, and the
// rest are handed to fn split by split. Lines are read with ReadString rather
// than a Scanner because member-map rows can be arbitrarily long.
func ReadRows(r io.Reader, split func(string) []string, fn RowFunc) error {
	br := bufio.NewReader(r)

	for i := 1; ; i++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("line %d: %w", i, err)
		}

		if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			if ferr := fn(i, split(trimmed)); ferr != nil {
				return ferr
			}
		}

		if err == io.EOF {
			return nil
		}
	}
}

// ReadTSV is ReadRows split on tabs.
func ReadTSV(r io.Reader, fn RowFunc) error {
	return ReadRows(r, SplitTabs, fn)
}

// SplitTabs splits a row on every tab.
func SplitTabs(line string) []string {
	return strings.Split(line, "\t")
}
