package otutab

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// GSReadCloser decorates a Google Storage object handle with io.Reader and
// io.Closer so that cluster, member-map and taxonomy inputs can be read
// straight from a bucket. The range reader is opened on first read.
type GSReadCloser struct {
	*storage.ObjectHandle
	Context context.Context
	r       *storage.Reader
}

func (s *GSReadCloser) Read(buf []byte) (int, error) {
	var err error
	if s.r == nil {
		s.r, err = s.NewReader(s.Context)
		if err != nil {
			return 0, err
		}
	}

	return s.r.Read(buf)
}

func (s *GSReadCloser) Close() error {
	if s.r == nil {
		return nil
	}
	err := s.r.Close()
	s.r = nil

	return err
}

// MaybeOpenFromGoogleStorage opens path from Google Storage if it is a
// gs:// URL and a client is available, and from the local filesystem
// otherwise.
func MaybeOpenFromGoogleStorage(path string, client *storage.Client) (io.ReadCloser, error) {
	if client != nil && strings.HasPrefix(path, "gs://") {
		pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
		if len(pathParts) != 2 {
			return nil, fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
		}

		handle := client.Bucket(pathParts[0]).Object(pathParts[1])
		wrapped := &GSReadCloser{
			ObjectHandle: handle,
			Context:      context.Background(),
		}

		// Fail early, with the path in the message, if the object is missing.
		if _, err := handle.Attrs(wrapped.Context); err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
		}

		return wrapped, nil
	}

	if strings.HasPrefix(path, "gs://") {
		return nil, fmt.Errorf("%s: a google storage client is required to read gs:// paths", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return f, nil
}

// OpenInput opens a local or gs:// path and transparently decompresses it.
// The returned closer releases both the decompressor and the underlying
// handle.
func OpenInput(path string, client *storage.Client) (io.ReadCloser, error) {
	f, err := MaybeOpenFromGoogleStorage(path, client)
	if err != nil {
		return nil, err
	}

	r, err := MaybeDecompressReadCloser(f)
	if err != nil {
		f.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return r, nil
}

// NeedsStorageClient reports whether any of the paths points at Google
// Storage.
func NeedsStorageClient(paths ...string) bool {
	for _, path := range paths {
		if strings.HasPrefix(path, "gs://") {
			return true
		}
	}

	return false
}
