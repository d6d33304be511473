package cluster

// Group is one cluster from a greedy clustering run: a header, the members
// that followed it, and the member that seeded the cluster.
type Group struct {
	ClusterID        string
	RepresentativeID string
	Members          []string

	// MemberLines holds the 1-based line of each entry in Members.
	MemberLines []int
}

// Size is the number of members, representative included.
func (g *Group) Size() int {
	return len(g.Members)
}

func (g *Group) complete() bool {
	return len(g.Members) > 0 && g.RepresentativeID != ""
}
