// Package otutable turns clustered reads into ranked OTUs and writes the
// member map and abundance tables.
package otutable

import (
	"sort"
	"strconv"
)

const otuPrefix = "OTU_"

// OTU is one ranked cluster.
type OTU struct {
	ID               string
	Rank             int
	ClusterID        string
	RepresentativeID string
	Members          []string
}

func (o *OTU) Size() int {
	return len(o.Members)
}

// SortedMembers returns a sorted copy of the members.
func (o *OTU) SortedMembers() []string {
	return SortedCopy(o.Members)
}

// OTUID builds the identifier for a 1-based rank.
func OTUID(rank int) string {
	return otuPrefix + strconv.Itoa(rank)
}

func SortedCopy(members []string) []string {
	out := make([]string, len(members))
	copy(out, members)
	sort.Strings(out)

	return out
}
