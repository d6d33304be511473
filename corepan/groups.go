// Package corepan estimates core and pan species accumulation curves: for
// each sample group, how many species are shared by every sample (core) or
// seen in any sample (pan) as the number of sampled members grows.
package corepan

import (
	"encoding/csv"
	"io"
	"log"
	"sort"

	"github.com/carbocation/otutab"
	"github.com/carbocation/otutab/cluster"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// GroupRow is one line of a group file: a sample and the group it belongs to.
type GroupRow struct {
	Sample string `csv:"sample"`
	Group  string `csv:"group"`
}

// Groups is the parsed group file.
type Groups struct {
	Samples map[string][]string // group => sorted samples
	GroupOf map[string]string   // sample => group
}

// LoadGroups reads a headerless two-column TSV of sample and group.
func LoadGroups(r io.Reader) (*Groups, error) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		cr := csv.NewReader(in)
		cr.Comma = '\t'
		cr.Comment = '#'
		cr.FieldsPerRecord = 2
		cr.LazyQuotes = true
		cr.TrimLeadingSpace = true
		return cr
	})

	rows := []*GroupRow{}
	if err := gocsv.UnmarshalWithoutHeaders(r, &rows); err != nil {
		return nil, pfx.Err(err)
	}

	out := &Groups{
		Samples: make(map[string][]string),
		GroupOf: make(map[string]string),
	}
	seen := make(map[string]map[string]bool)
	for _, row := range rows {
		out.GroupOf[row.Sample] = row.Group
		if seen[row.Group] == nil {
			seen[row.Group] = make(map[string]bool)
		}
		if seen[row.Group][row.Sample] {
			continue
		}
		seen[row.Group][row.Sample] = true
		out.Samples[row.Group] = append(out.Samples[row.Group], row.Sample)
	}
	for _, samples := range out.Samples {
		sort.Strings(samples)
	}

	return out, nil
}

// Names returns the group names in sorted order.
func (g *Groups) Names() []string {
	out := make([]string, 0, len(g.Samples))
	for name := range g.Samples {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Occurrence records, per group, which samples each species was seen in.
type Occurrence map[string]map[string]map[string]bool // group => species => sample set

// LoadAnnotation reads "read_id<TAB>species" rows. The sample comes from the
// read id. Rows whose id has no sample prefix, and samples that belong to no
// group, are logged and skipped.
func LoadAnnotation(r io.Reader, groups *Groups, logger *log.Logger) (Occurrence, error) {
	out := make(Occurrence)

	err := otutab.ReadTSV(r, func(line int, fields []string) error {
		if len(fields) < 2 {
			logger.Printf("Line %d: expected a read id and a species, skipping\n", line)
			return nil
		}

		sample, err := cluster.SampleID(fields[0])
		if err != nil {
			logger.Printf("Line %d: %v, skipping\n", line, err)
			return nil
		}

		group, ok := groups.GroupOf[sample]
		if !ok {
			logger.Printf("Line %d: sample %s is not in any group, skipping\n", line, sample)
			return nil
		}

		if out[group] == nil {
			out[group] = make(map[string]map[string]bool)
		}
		if out[group][fields[1]] == nil {
			out[group][fields[1]] = make(map[string]bool)
		}
		out[group][fields[1]][sample] = true

		return nil
	})
	if err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}
