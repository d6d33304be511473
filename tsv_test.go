package otutab

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadTSV(t *testing.T) {
	input := "# comment\n\nOTU_1\tA_1\tB_2\n  OTU_2\tC_1  \nOTU_3"

	var lines []int
	var rows []string
	err := ReadTSV(strings.NewReader(input), func(line int, fields []string) error {
		lines = append(lines, line)
		rows = append(rows, strings.Join(fields, "|"))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if strings.Join(rows, ",") != "OTU_1|A_1|B_2,OTU_2|C_1,OTU_3" {
		t.Errorf("Unexpected rows %v", rows)
	}
	if len(lines) != 3 || lines[0] != 3 || lines[2] != 5 {
		t.Errorf("Unexpected line numbers %v", lines)
	}
}

func TestOutputCloseTwice(t *testing.T) {
	dir, err := os.MkdirTemp("", "otutab")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	o, err := CreateOutput(dir, "otu_tab.tsv")
	if err != nil {
		t.Fatal(err)
	}
	o.WriteString("#OTU ID\tA\n")
	if err := o.Close(); err != nil {
		t.Fatal(err)
	}
	if err := o.Close(); err != nil {
		t.Errorf("Expected a second Close to be a nop, got %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "otu_tab.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "#OTU ID\tA\n" {
		t.Errorf("Expected flushed content, got %q", got)
	}
}

func TestExpandHome(t *testing.T) {
	p, err := ExpandHome("out/dir")
	if err != nil {
		t.Fatal(err)
	}
	if p != "out/dir" {
		t.Errorf("Expected a relative path to be untouched, got %s", p)
	}
}
