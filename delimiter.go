package otutab

import (
	"bytes"
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader. Tab-separated is assumed when nothing stands out,
// since every table in this suite is a TSV.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 && len(delimiters[0]) > 0 {
		return rune(delimiters[0][0])
	}

	return '\t'
}

// DetermineDelimiterBytes is DetermineDelimiter over an in-memory buffer.
func DetermineDelimiterBytes(b []byte) rune {
	return DetermineDelimiter(bytes.NewReader(b))
}
