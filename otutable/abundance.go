package otutable

import (
	"errors"
	"fmt"
	"sort"

	"github.com/carbocation/otutab/cluster"
)

// Counts tallies members per sample.
func Counts(members []string) (map[string]int, error) {
	out := make(map[string]int)
	for _, m := range members {
		sample, err := cluster.SampleID(m)
		if err != nil {
			return nil, err
		}
		out[sample]++
	}

	return out, nil
}

// Sum is the total count across all samples.
func Sum(counts map[string]int) int {
	total := 0
	for _, v := range counts {
		total += v
	}

	return total
}

// FormatRow lays counts out in sample order. Counts are integers but are
// written with two decimals, which is what downstream biom tooling expects.
func FormatRow(samples []string, counts map[string]int) []string {
	out := make([]string, len(samples))
	for i, s := range samples {
		out[i] = fmt.Sprintf("%.2f", float64(counts[s]))
	}

	return out
}

// sampleSet accumulates the sorted, deduplicated sample universe.
type sampleSet map[string]struct{}

// add records the sample of every member. lines, when given, supplies the
// source line for error reporting.
func (s sampleSet) add(members []string, lines []int) error {
	for i, m := range members {
		sample, err := cluster.SampleID(m)
		if err != nil {
			var mie *cluster.MalformedIdentifierError
			if errors.As(err, &mie) && i < len(lines) {
				mie.Line = lines[i]
			}
			return err
		}
		s[sample] = struct{}{}
	}

	return nil
}

func (s sampleSet) sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
