// mergeotu merges OTUs that were classified to the same species and writes
// the final member map, abundance table and taxonomy table for the OTUs that
// are abundant enough to keep.
package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/otutab"
	_ "github.com/carbocation/otutab/compileinfoprint"
	"github.com/carbocation/otutab/otutable"
	"github.com/carbocation/otutab/taxonomy"
)

const (
	MemberMapFile = "otu_map_final.tsv"
	AbundanceFile = "otu_tab_final.tsv"
	TaxonomyFile  = "otu_map_final.tax"
)

var (
	STDOUT = bufio.NewWriterSize(os.Stdout, 4096)
)

var client *storage.Client

func main() {
	defer STDOUT.Flush()

	var input, taxFile, outDir string
	var noMerge bool
	flag.StringVar(&input, "input", "", "Path to the OTU member map (otu_map.tsv). May also be given as the first positional argument.")
	flag.StringVar(&taxFile, "taxonomy", "", "Path to the OTU classification: otu_id, lineage, then any further columns to carry into otu_map_final.tax.")
	flag.BoolVar(&noMerge, "no_merge", false, "Report OTUs that share a species but do not merge them.")
	flag.StringVar(&outDir, "outdir", ".", "Directory for the final tables.")
	flag.Parse()

	if input == "" && flag.NArg() > 0 {
		input = flag.Arg(0)
	}

	if input == "" {
		flag.Usage()
		log.Fatalln("Must specify an --input member map")
	}

	if taxFile == "" {
		flag.Usage()
		log.Fatalln("Must specify a --taxonomy file")
	}

	if otutab.NeedsStorageClient(input, taxFile) {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	dir, err := otutab.ExpandHome(outDir)
	if err != nil {
		log.Fatalln(err)
	}

	if err := run(input, taxFile, dir, noMerge, STDOUT, log.Default()); err != nil {
		STDOUT.Flush()
		log.Fatalln(err)
	}
}

func readMemberMap(path string) (*otutable.MemberMap, error) {
	f, err := otutab.OpenInput(path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return otutable.ReadMemberMap(f)
}

func readTaxonomy(path string) (*taxonomy.Table, error) {
	f, err := otutab.OpenInput(path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return taxonomy.Load(f)
}

func run(input, taxFile, outDir string, noMerge bool, stdout io.Writer, logger *log.Logger) error {
	tax, err := readTaxonomy(taxFile)
	if err != nil {
		return err
	}
	logger.Printf("Loaded %d classified OTUs (%d species) from %s\n", len(tax.Lineage), len(tax.Species), taxFile)

	members, err := readMemberMap(input)
	if err != nil {
		return err
	}
	logger.Printf("Loaded %d OTUs across %d samples from %s\n", len(members.IDs), len(members.Samples), input)

	result := taxonomy.Consolidate(members, tax, taxonomy.Options{
		NoMerge: noMerge,
		Logger:  logger,
	})

	mapOut, err := otutab.CreateOutput(outDir, MemberMapFile)
	if err != nil {
		return err
	}
	defer mapOut.Close()

	tabOut, err := otutab.CreateOutput(outDir, AbundanceFile)
	if err != nil {
		return err
	}
	defer tabOut.Close()

	taxOut, err := otutab.CreateOutput(outDir, TaxonomyFile)
	if err != nil {
		return err
	}
	defer taxOut.Close()

	if err := result.WriteSummary(stdout); err != nil {
		return err
	}

	kept, err := result.WriteFinal(mapOut, tabOut, taxOut)
	if err != nil {
		return err
	}

	for _, o := range []*otutab.Output{mapOut, tabOut, taxOut} {
		if err := o.Close(); err != nil {
			return err
		}
	}
	logger.Printf("%d of %d OTUs kept after merging; wrote %s, %s and %s\n", kept, len(result.IDs), mapOut.Name(), tabOut.Name(), taxOut.Name())

	return nil
}
