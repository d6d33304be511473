package corepan

import (
	"fmt"
	"io"
	"log"
	"strings"

	"gonum.org/v1/gonum/stat"
)

const (
	// MaxCombinations caps how many sample subsets are scored per size.
	MaxCombinations = 40

	// abnormalCore is the core size at or below which a subset is reported.
	abnormalCore = 50
)

// Curve is the mean core and pan species count for 1..N sampled members of
// one group.
type Curve struct {
	Group string
	Core  []float64
	Pan   []float64
}

// count scores one subset of samples against a group's species occurrences.
func count(species map[string]map[string]bool, samples []string) (core, pan int) {
	for _, present := range species {
		inAll, inAny := true, false
		for _, s := range samples {
			if present[s] {
				inAny = true
			} else {
				inAll = false
			}
		}
		if inAll {
			core++
		}
		if inAny {
			pan++
		}
	}

	return core, pan
}

// Combinations calls fn with up to limit k-subsets of items, in the
// lexicographic order of their indices. fn must not retain the slice.
func Combinations(items []string, k, limit int, fn func([]string)) {
	n := len(items)
	if k <= 0 || k > n || limit <= 0 {
		return
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	subset := make([]string, k)

	for emitted := 0; emitted < limit; emitted++ {
		for i, j := range idx {
			subset[i] = items[j]
		}
		fn(subset)

		// Advance to the next index combination.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// Accumulate builds the core and pan curve for one group.
func Accumulate(group string, species map[string]map[string]bool, samples []string, logger *log.Logger) Curve {
	out := Curve{Group: group}

	for k := 1; k <= len(samples); k++ {
		var cores, pans []float64
		Combinations(samples, k, MaxCombinations, func(subset []string) {
			core, pan := count(species, subset)
			if core <= abnormalCore {
				logger.Printf("Abnormal number of otu cores in the sample(%d):%s\n", core, strings.Join(subset, "\t"))
			}
			cores = append(cores, float64(core))
			pans = append(pans, float64(pan))
		})
		out.Core = append(out.Core, stat.Mean(cores, nil))
		out.Pan = append(out.Pan, stat.Mean(pans, nil))
	}

	return out
}

// AccumulateAll builds one curve per group that has both samples and
// annotated species, in group name order.
func AccumulateAll(groups *Groups, occ Occurrence, logger *log.Logger) []Curve {
	var out []Curve
	for _, name := range groups.Names() {
		species, ok := occ[name]
		if !ok {
			continue
		}
		out = append(out, Accumulate(name, species, groups.Samples[name], logger))
	}

	return out
}

func formatValues(vals []float64) string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = fmt.Sprintf("%.2f", v)
	}

	return strings.Join(out, "\t")
}

// WriteCurves prints the pan line then the core line for every group.
func WriteCurves(w io.Writer, curves []Curve) error {
	for _, c := range curves {
		if _, err := fmt.Fprintf(w, "Group %s\tPan species\t%s\n", c.Group, formatValues(c.Pan)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Group %s\tCore species\t%s\n", c.Group, formatValues(c.Core)); err != nil {
			return err
		}
	}

	return nil
}
