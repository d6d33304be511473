package cluster

import (
	"errors"
	"fmt"
	"strings"
)

// SampleDelimiter separates the sample name from the read name in a member
// identifier, e.g. "gut01_M00123:4:000".
const SampleDelimiter = "_"

// ErrMalformedIdentifier is matched by every *MalformedIdentifierError.
var ErrMalformedIdentifier = errors.New("malformed member identifier")

// MalformedIdentifierError names an identifier that has no sample prefix.
// Line is the 1-based line in the file the identifier came from, or 0 when
// unknown.
type MalformedIdentifierError struct {
	ID   string
	Line int
}

func (e *MalformedIdentifierError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s %q has no %q sample delimiter", e.Line, ErrMalformedIdentifier, e.ID, SampleDelimiter)
	}

	return fmt.Sprintf("%s %q has no %q sample delimiter", ErrMalformedIdentifier, e.ID, SampleDelimiter)
}

func (e *MalformedIdentifierError) Is(target error) bool {
	return target == ErrMalformedIdentifier
}

// SampleID returns the part of memberID before the first delimiter.
func SampleID(memberID string) (string, error) {
	i := strings.Index(memberID, SampleDelimiter)
	if i < 0 {
		return "", &MalformedIdentifierError{ID: memberID}
	}

	return memberID[:i], nil
}
