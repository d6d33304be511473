package taxonomy

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/carbocation/otutab/otutable"
)

// Options controls Consolidate.
type Options struct {
	// NoMerge still detects OTUs sharing a species but leaves them apart.
	NoMerge bool

	// Logger receives one line per merge. Nil discards.
	Logger *log.Logger
}

// Result holds the surviving OTUs in member-map order.
type Result struct {
	IDs      []string
	Members  map[string][]string
	Samples  []string
	Taxonomy *Table
}

// Consolidate folds OTUs that share a species-level lineage into the one that
// comes first in the member map. The walk follows m.IDs exactly once: an OTU
// absorbs every later mate still present, and an OTU that was absorbed
// earlier is skipped when its own turn comes.
func Consolidate(m *otutable.MemberMap, t *Table, opts Options) *Result {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	members := make(map[string][]string, len(m.IDs))
	pos := make(map[string]int, len(m.IDs))
	for i, id := range m.IDs {
		members[id] = append([]string(nil), m.Members[id]...)
		pos[id] = i
	}
	removed := make(map[string]bool)

	for _, id := range m.IDs {
		if removed[id] {
			continue
		}

		for _, mate := range t.Mates(id) {
			if mate == id || removed[mate] {
				continue
			}
			if _, present := members[mate]; !present {
				continue
			}

			if opts.NoMerge {
				// Each pair is reported once, from its earlier OTU.
				if pos[mate] < pos[id] {
					continue
				}
				logger.Printf("%s shares a species with %s; not merging\n", mate, id)
				continue
			}

			members[id] = append(members[id], members[mate]...)
			delete(members, mate)
			removed[mate] = true
			logger.Printf("%s merges into %s\n", mate, id)
		}
	}

	out := &Result{
		Members:  members,
		Samples:  m.Samples,
		Taxonomy: t,
	}
	for _, id := range m.IDs {
		if !removed[id] {
			out.IDs = append(out.IDs, id)
		}
	}

	return out
}

// WriteSummary prints every surviving OTU and its sorted members, whether or
// not it passes the final filter.
func (r *Result) WriteSummary(w io.Writer) error {
	for _, id := range r.IDs {
		if err := otutable.WriteMemberRow(w, id, r.Members[id]); err != nil {
			return err
		}
	}

	return nil
}

// lineage returns the trimmed species-level lineage of id, if any.
func (r *Result) lineage(id string) (string, bool) {
	lineage, ok := r.Taxonomy.Lineage[id]
	if !ok {
		return "", false
	}

	lineage = strings.TrimRight(lineage, ";")
	if !IsSpecies(lineage) {
		return "", false
	}

	return lineage, true
}

// Keep reports whether an abundance total clears both floors: more than one
// read per 2.5 samples and more than five reads. A total equal to either
// bound is dropped.
func Keep(total, nSamples int) bool {
	t := float64(total)
	return t > float64(nSamples)/2.5 && t > 5
}

// WriteFinal writes the member map, abundance table and taxonomy table for
// every OTU with a species-level lineage whose abundance passes Keep.
func (r *Result) WriteFinal(mapW, tabW, taxW io.Writer) (int, error) {
	if _, err := fmt.Fprintln(tabW, "# Constructed from biom file"); err != nil {
		return 0, err
	}
	if err := otutable.WriteAbundanceHeader(tabW, r.Samples, "taxonomy"); err != nil {
		return 0, err
	}

	kept := 0
	for _, id := range r.IDs {
		lineage, ok := r.lineage(id)
		if !ok {
			continue
		}

		counts, err := otutable.Counts(r.Members[id])
		if err != nil {
			return kept, fmt.Errorf("OTU %s: %w", id, err)
		}
		if !Keep(otutable.Sum(counts), len(r.Samples)) {
			continue
		}

		row := strings.Join(otutable.FormatRow(r.Samples, counts), "\t")
		if _, err := fmt.Fprintf(tabW, "%s\t%s\t%s\n", id, row, strings.ReplaceAll(lineage, ";", "; ")); err != nil {
			return kept, err
		}
		if err := otutable.WriteMemberRow(mapW, id, r.Members[id]); err != nil {
			return kept, err
		}
		if _, err := fmt.Fprintf(taxW, "%s\t%s\n", id, strings.Join(r.Taxonomy.Fields[id], "\t")); err != nil {
			return kept, err
		}
		kept++
	}

	return kept, nil
}
