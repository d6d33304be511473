package otutab

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
)

// Output is a buffered file that is flushed and closed exactly once.
type Output struct {
	*bufio.Writer
	file   *os.File
	closed bool
}

// CreateOutput creates (or truncates) the file at dir/name.
func CreateOutput(dir, name string) (*Output, error) {
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return &Output{Writer: bufio.NewWriter(f), file: f}, nil
}

// Name is the path of the underlying file.
func (o *Output) Name() string {
	return o.file.Name()
}

// Close flushes buffered output and closes the file. Calling it again is a
// nop, so it can be both deferred and checked on the success path.
func (o *Output) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true

	ferr := o.Flush()
	cerr := o.file.Close()
	if ferr != nil {
		return pfx.Err(ferr)
	}
	if cerr != nil {
		return pfx.Err(cerr)
	}

	return nil
}
