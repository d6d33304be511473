package otutable

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/carbocation/otutab/cluster"
)

// Sizes 1, 5, 2 in file order.
const clusters = `>Cluster 0
0	300nt, >C_9... *
>Cluster 1
0	291nt, >A_1... *
1	291nt, >A_2... at +/99.66%
2	291nt, >B_1... at +/98.97%
3	291nt, >C_4... at +/100.00%
4	291nt, >A_3... at -/99.31%
>Cluster 2
0	288nt, >B_2... *
1	288nt, >C_1... at +/99.65%
`

func build(t *testing.T, input string) *Table {
	t.Helper()
	table, err := Build(cluster.NewReader(strings.NewReader(input)))
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestBuildRanksBySize(t *testing.T) {
	table := build(t, clusters)

	if len(table.OTUs) != 3 {
		t.Fatalf("Expected 3 OTUs, got %d", len(table.OTUs))
	}

	want := []struct {
		id, cluster string
		size        int
	}{
		{"OTU_1", "Cluster1", 5},
		{"OTU_2", "Cluster2", 2},
		{"OTU_3", "Cluster0", 1},
	}
	for i, w := range want {
		o := table.OTUs[i]
		if o.ID != w.id || o.ClusterID != w.cluster || o.Size() != w.size {
			t.Errorf("Rank %d: expected %+v, got %s/%s/%d", i+1, w, o.ID, o.ClusterID, o.Size())
		}
	}

	if strings.Join(table.Samples, ",") != "A,B,C" {
		t.Errorf("Unexpected sample universe %v", table.Samples)
	}
}

func TestBuildTiesKeepInputOrder(t *testing.T) {
	input := ">Cluster 7\n0\t1nt, >A_1... *\n>Cluster 3\n0\t1nt, >B_1... *\n>Cluster 5\n0\t1nt, >C_1... *\n"
	table := build(t, input)

	for i, want := range []string{"Cluster7", "Cluster3", "Cluster5"} {
		if table.OTUs[i].ClusterID != want {
			t.Errorf("OTU_%d: expected %s, got %s", i+1, want, table.OTUs[i].ClusterID)
		}
	}
}

func TestAbundanceThreshold(t *testing.T) {
	table := build(t, clusters)

	var tab, otuMap bytes.Buffer
	if err := table.WriteAbundance(&tab, DefaultMinClusterSize); err != nil {
		t.Fatal(err)
	}
	if err := table.WriteMemberMap(&otuMap); err != nil {
		t.Fatal(err)
	}

	wantTab := "#OTU ID\tA\tB\tC\nOTU_1\t3.00\t1.00\t1.00\n"
	if tab.String() != wantTab {
		t.Errorf("Expected abundance table\n%q\ngot\n%q", wantTab, tab.String())
	}

	wantMap := "OTU_1\tA_1\tA_2\tA_3\tB_1\tC_4\nOTU_2\tB_2\tC_1\nOTU_3\tC_9\n"
	if otuMap.String() != wantMap {
		t.Errorf("Expected member map\n%q\ngot\n%q", wantMap, otuMap.String())
	}
}

func TestThresholdAboveEveryOTU(t *testing.T) {
	table := build(t, clusters)

	var tab bytes.Buffer
	if err := table.WriteAbundance(&tab, 100); err != nil {
		t.Fatal(err)
	}
	if tab.String() != "#OTU ID\tA\tB\tC\n" {
		t.Errorf("Expected header only, got %q", tab.String())
	}
}

func TestAbundanceSumsToMemberCount(t *testing.T) {
	table := build(t, clusters)

	total := 0
	for _, o := range table.OTUs {
		counts, err := Counts(o.Members)
		if err != nil {
			t.Fatal(err)
		}
		total += Sum(counts)
	}
	if total != 8 {
		t.Errorf("Expected 8 members counted, got %d", total)
	}
}

func TestSummary(t *testing.T) {
	table := build(t, clusters)

	var out bytes.Buffer
	if err := table.WriteSummary(&out); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected header and 3 lines, got %d", len(lines))
	}
	if lines[1] != "5\tOTU_1\tA_1\tCluster1" {
		t.Errorf("Unexpected first summary line %q", lines[1])
	}
}

func TestEmptyInput(t *testing.T) {
	table := build(t, "")

	var tab, otuMap bytes.Buffer
	if err := table.WriteAbundance(&tab, DefaultMinClusterSize); err != nil {
		t.Fatal(err)
	}
	if err := table.WriteMemberMap(&otuMap); err != nil {
		t.Fatal(err)
	}
	if tab.String() != "#OTU ID\t\n" {
		t.Errorf("Expected a header-only table, got %q", tab.String())
	}
	if otuMap.Len() != 0 {
		t.Errorf("Expected an empty member map, got %q", otuMap.String())
	}

	s, err := table.SizeSummary()
	if err != nil {
		t.Fatal(err)
	}
	if s.N != 0 {
		t.Errorf("Expected no OTUs, got %d", s.N)
	}
}

func TestMalformedIdentifierNamesLine(t *testing.T) {
	input := ">Cluster 0\n0\t1nt, >A_1... *\n1\t1nt, >nodelim... at 99.00%\n"
	_, err := Build(cluster.NewReader(strings.NewReader(input)))

	var mie *cluster.MalformedIdentifierError
	if !errors.As(err, &mie) {
		t.Fatalf("Expected a MalformedIdentifierError, got %v", err)
	}
	if mie.ID != "nodelim" || mie.Line != 3 {
		t.Errorf("Expected nodelim on line 3, got %s on line %d", mie.ID, mie.Line)
	}
}

func TestSizeSummary(t *testing.T) {
	s, err := build(t, clusters).SizeSummary()
	if err != nil {
		t.Fatal(err)
	}
	if s.N != 3 || s.Median != 2 || s.Max != 5 {
		t.Errorf("Unexpected size summary %+v", s)
	}
}

func TestMemberMapRoundTrip(t *testing.T) {
	table := build(t, clusters)

	var buf bytes.Buffer
	if err := table.WriteMemberMap(&buf); err != nil {
		t.Fatal(err)
	}

	got, err := ReadMemberMap(&buf)
	if err != nil {
		t.Fatal(err)
	}

	want := table.MemberMap()
	if strings.Join(got.IDs, ",") != strings.Join(want.IDs, ",") {
		t.Errorf("Expected ids %v, got %v", want.IDs, got.IDs)
	}
	for _, id := range want.IDs {
		if strings.Join(got.Members[id], ",") != strings.Join(want.Members[id], ",") {
			t.Errorf("%s: expected %v, got %v", id, want.Members[id], got.Members[id])
		}
	}
	if strings.Join(got.Samples, ",") != "A,B,C" {
		t.Errorf("Unexpected recomputed samples %v", got.Samples)
	}
}
