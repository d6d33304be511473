package otutable

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/carbocation/otutab/cluster"
	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
)

// DefaultMinClusterSize is the smallest OTU that gets an abundance row.
const DefaultMinClusterSize = 3

// GroupSource yields cluster groups until it returns nil. *cluster.Reader
// satisfies it.
type GroupSource interface {
	Read() *cluster.Group
	Err() error
}

// Table holds every OTU in rank order and the sample universe.
type Table struct {
	OTUs    []*OTU
	Samples []string
}

// Build drains src, ranks the groups by size (largest first, ties kept in
// input order) and names them OTU_1, OTU_2, ...
func Build(src GroupSource) (*Table, error) {
	samples := make(sampleSet)
	var otus []*OTU

	for g := src.Read(); g != nil; g = src.Read() {
		if err := samples.add(g.Members, g.MemberLines); err != nil {
			return nil, fmt.Errorf("cluster %s: %w", g.ClusterID, err)
		}

		otus = append(otus, &OTU{
			ClusterID:        g.ClusterID,
			RepresentativeID: g.RepresentativeID,
			Members:          g.Members,
		})
	}
	if err := src.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	sort.SliceStable(otus, func(i, j int) bool {
		return otus[i].Size() > otus[j].Size()
	})

	for i, o := range otus {
		o.Rank = i + 1
		o.ID = OTUID(o.Rank)
	}

	return &Table{OTUs: otus, Samples: samples.sorted()}, nil
}

// WriteMemberMap writes one row per OTU: the id, then its sorted members.
func (t *Table) WriteMemberMap(w io.Writer) error {
	for _, o := range t.OTUs {
		if err := WriteMemberRow(w, o.ID, o.Members); err != nil {
			return err
		}
	}

	return nil
}

// WriteMemberRow writes id followed by the sorted members.
func WriteMemberRow(w io.Writer, id string, members []string) error {
	_, err := fmt.Fprintf(w, "%s\t%s\n", id, strings.Join(SortedCopy(members), "\t"))
	return err
}

// WriteAbundanceHeader writes the "#OTU ID" header followed by the samples
// and any extra trailing columns.
func WriteAbundanceHeader(w io.Writer, samples []string, extra ...string) error {
	cols := append([]string{strings.Join(samples, "\t")}, extra...)
	_, err := fmt.Fprintf(w, "#OTU ID\t%s\n", strings.Join(cols, "\t"))
	return err
}

// WriteAbundance writes the abundance table. OTUs smaller than
// minClusterSize keep their rank but get no row.
func (t *Table) WriteAbundance(w io.Writer, minClusterSize int) error {
	if err := WriteAbundanceHeader(w, t.Samples); err != nil {
		return err
	}

	for _, o := range t.OTUs {
		if o.Size() < minClusterSize {
			continue
		}

		counts, err := Counts(o.Members)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "%s\t%s\n", o.ID, strings.Join(FormatRow(t.Samples, counts), "\t")); err != nil {
			return err
		}
	}

	return nil
}

// WriteSummary prints one line per OTU in rank order: size, OTU id, seed
// sequence and the cluster it came from.
func (t *Table) WriteSummary(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "#Clustered Number\tOTU ID\tSeed Seq\tCluster ID"); err != nil {
		return err
	}

	for _, o := range t.OTUs {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", o.Size(), o.ID, o.RepresentativeID, o.ClusterID); err != nil {
			return err
		}
	}

	return nil
}

// SizeStats describes the cluster size distribution.
type SizeStats struct {
	N      int
	Mean   float64
	Median float64
	Max    float64
}

func (s SizeStats) String() string {
	return fmt.Sprintf("%d OTUs, cluster size mean %.2f median %.1f max %.0f", s.N, s.Mean, s.Median, s.Max)
}

// SizeSummary summarizes the OTU sizes. An empty table yields the zero value.
func (t *Table) SizeSummary() (SizeStats, error) {
	out := SizeStats{N: len(t.OTUs)}
	if out.N == 0 {
		return out, nil
	}

	sizes := make([]int, 0, len(t.OTUs))
	for _, o := range t.OTUs {
		sizes = append(sizes, o.Size())
	}
	data := stats.LoadRawData(sizes)

	var err error
	if out.Mean, err = data.Mean(); err != nil {
		return out, pfx.Err(err)
	}
	if out.Median, err = data.Median(); err != nil {
		return out, pfx.Err(err)
	}
	if out.Max, err = data.Max(); err != nil {
		return out, pfx.Err(err)
	}

	return out, nil
}
