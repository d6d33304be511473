// Package cluster reads cd-hit style .clstr files.
//
// A file is a sequence of groups. Each group starts with a header line
// beginning with '>' and is followed by member lines such as
//
//	0	2799aa, >sampleA_12... *
//	1	2799aa, >sampleB_7... at 99.21%
//
// The member without a similarity percentage is the representative.
package cluster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/carbocation/pfx"
)

const (
	headerMarker     = ">"
	idTerminator     = "..."
	similarityMarker = "%"
)

// Reader yields one Group at a time from a cluster file.
type Reader struct {
	br      *bufio.Reader
	closer  io.Closer
	line    int
	pending *Group
	eof     bool
	err     error
}

func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Open reads a cluster file from the local filesystem. Use NewReader for
// compressed or remote inputs.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	r := NewReader(f)
	r.closer = f

	return r, nil
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}

	return r.closer.Close()
}

func (r *Reader) Err() error {
	return r.err
}

// Read returns the next complete group, or nil once the input is exhausted
// or an error occurred (check Err). Groups that never acquired a member or a
// representative are dropped.
func (r *Reader) Read() *Group {
	for !r.eof && r.err == nil {
		raw, err := r.br.ReadString('\n')
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			r.err = fmt.Errorf("cluster file line %d: %w", r.line+1, err)
			return nil
		}
		r.line++

		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, headerMarker) {
			done := r.pending
			r.pending = &Group{ClusterID: clusterID(line)}
			if done != nil && done.complete() {
				return done
			}
			continue
		}

		r.addMember(line)
	}

	if r.err != nil {
		return nil
	}

	// Flush whatever was collected after the final header.
	done := r.pending
	r.pending = nil
	if done != nil && done.complete() {
		return done
	}

	return nil
}

func (r *Reader) addMember(line string) {
	if r.pending == nil {
		// Members before any header belong to an anonymous group.
		r.pending = &Group{}
	}

	if i := strings.LastIndex(line, headerMarker); i >= 0 {
		line = line[i+1:]
	}

	id := line
	if i := strings.Index(line, idTerminator); i >= 0 {
		id = line[:i]
	}

	// The first unmarked member seeds the cluster; any later unmarked member
	// is kept as an ordinary member.
	if !strings.Contains(line, similarityMarker) && r.pending.RepresentativeID == "" {
		r.pending.RepresentativeID = id
	}

	r.pending.Members = append(r.pending.Members, id)
	r.pending.MemberLines = append(r.pending.MemberLines, r.line)
}

// clusterID turns a header such as ">Cluster 12" into "Cluster12".
func clusterID(header string) string {
	return strings.ReplaceAll(strings.Trim(header, headerMarker), " ", "")
}

// ReadAll drains r.
func ReadAll(r *Reader) ([]*Group, error) {
	var out []*Group
	for g := r.Read(); g != nil; g = r.Read() {
		out = append(out, g)
	}

	return out, r.Err()
}
