package otutable

import (
	"fmt"
	"io"

	"github.com/carbocation/otutab"
)

// MemberMap is a member-map table read back from disk: OTU ids in file order
// and the members of each.
type MemberMap struct {
	IDs     []string
	Members map[string][]string

	// Samples is derived from the members again rather than carried over
	// from the run that wrote the file.
	Samples []string
}

// ReadMemberMap parses "otu_id<TAB>member<TAB>member..." rows. A repeated id
// keeps its first position and its last member list.
func ReadMemberMap(r io.Reader) (*MemberMap, error) {
	out := &MemberMap{Members: make(map[string][]string)}
	samples := make(sampleSet)

	err := otutab.ReadTSV(r, func(line int, fields []string) error {
		id := fields[0]
		members := append([]string(nil), fields[1:]...)

		lines := make([]int, len(members))
		for i := range lines {
			lines[i] = line
		}
		if err := samples.add(members, lines); err != nil {
			return fmt.Errorf("OTU %s: %w", id, err)
		}

		if _, exists := out.Members[id]; !exists {
			out.IDs = append(out.IDs, id)
		}
		out.Members[id] = members

		return nil
	})
	if err != nil {
		return nil, err
	}

	out.Samples = samples.sorted()

	return out, nil
}

// MemberMap converts a freshly built table into the form ReadMemberMap
// returns, without a round trip through disk.
func (t *Table) MemberMap() *MemberMap {
	out := &MemberMap{
		Members: make(map[string][]string, len(t.OTUs)),
		Samples: append([]string(nil), t.Samples...),
	}
	for _, o := range t.OTUs {
		out.IDs = append(out.IDs, o.ID)
		out.Members[o.ID] = o.SortedMembers()
	}

	return out
}
