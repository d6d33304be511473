// Package taxonomy merges OTUs that were assigned the same species-level
// lineage and writes the final, filtered OTU tables.
package taxonomy

import (
	"io"
	"strings"

	"github.com/carbocation/otutab"
	"github.com/carbocation/pfx"
)

// SpeciesMarker is the rank prefix of a species label, as in
// "k__Bacteria;...;g__Blautia;s__Blautia_obeum".
const SpeciesMarker = "s__"

// IsSpecies reports whether a lineage reaches species level.
func IsSpecies(lineage string) bool {
	return strings.Contains(lineage, SpeciesMarker)
}

// Table is an OTU classification file.
type Table struct {
	// Lineage maps every classified OTU to its full lineage string.
	Lineage map[string]string

	// Species maps each species-level lineage to the OTUs carrying it, in
	// file order.
	Species map[string][]string

	// Fields holds columns 1.. of every species-level row, written verbatim
	// to the final taxonomy table.
	Fields map[string][]string
}

// Load reads "otu_id<TAB>lineage[<TAB>...]" rows. Rows without a lineage
// column are ignored, which leaves the OTU unclassified.
func Load(r io.Reader) (*Table, error) {
	t := &Table{
		Lineage: make(map[string]string),
		Species: make(map[string][]string),
		Fields:  make(map[string][]string),
	}

	err := otutab.ReadTSV(r, func(_ int, fields []string) error {
		if len(fields) < 2 {
			return nil
		}

		id, lineage := fields[0], fields[1]
		t.Lineage[id] = lineage
		if !IsSpecies(lineage) {
			return nil
		}

		t.Fields[id] = append([]string(nil), fields[1:]...)
		for _, known := range t.Species[lineage] {
			if known == id {
				return nil
			}
		}
		t.Species[lineage] = append(t.Species[lineage], id)

		return nil
	})
	if err != nil {
		return nil, pfx.Err(err)
	}

	return t, nil
}

// Mates returns every OTU sharing id's species-level lineage, id included.
// Unclassified OTUs and OTUs without a species label have none.
func (t *Table) Mates(id string) []string {
	lineage, ok := t.Lineage[id]
	if !ok {
		return nil
	}

	return t.Species[lineage]
}
