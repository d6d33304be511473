// cluster2otu turns a cd-hit cluster file into a ranked OTU member map
// (otu_map.tsv) and abundance table (otu_tab.tsv), and prints one summary line
// per OTU to stdout.
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
	"github.com/carbocation/otutab/cluster"
	_ "github.com/carbocation/otutab/compileinfoprint"
	"github.com/carbocation/otutab/otutable"
)

const (
	MemberMapFile = "otu_map.tsv"
	AbundanceFile = "otu_tab.tsv"
)

var (
	STDOUT = bufio.NewWriterSize(os.Stdout, 4096)
)

var client *storage.Client

func main() {
	defer STDOUT.Flush()

	var input, outDir string
	var minClus int
	flag.StringVar(&input, "input", "", "Path to the cd-hit .clstr file. May be compressed, or a google storage URL (gs://). May also be given as the first positional argument.")
	flag.IntVar(&minClus, "min_clus", otutable.DefaultMinClusterSize, "OTUs with fewer sequences than this get no row in the abundance table.")
	flag.StringVar(&outDir, "outdir", ".", "Directory for otu_map.tsv and otu_tab.tsv.")
	flag.Parse()

	if input == "" && flag.NArg() > 0 {
		input = flag.Arg(0)
	}

	if input == "" {
		flag.Usage()
		log.Fatalln("Must specify an --input cluster file")
	}

	if otutab.NeedsStorageClient(input) {
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

	if err := run(input, dir, minClus, STDOUT, log.Default()); err != nil {
		STDOUT.Flush()
		log.Fatalln(err)
	}
}

func run(input, outDir string, minClus int, stdout io.Writer, logger *log.Logger) error {
	logger.Printf("Reading clusters from %s\n", input)
	in, err := otutab.OpenInput(input, client)
	if err != nil {
		return err
	}
	defer in.Close()

	table, err := otutable.Build(cluster.NewReader(in))
	if err != nil {
		return err
	}

	summary, err := table.SizeSummary()
	if err != nil {
		return err
	}
	logger.Printf("%s across %d samples\n", summary, len(table.Samples))

	return writeTables(table, outDir, minClus, stdout, logger)
}

func writeTables(table *otutable.Table, outDir string, minClus int, stdout io.Writer, logger *log.Logger) error {
	otuMap, err := otutab.CreateOutput(outDir, MemberMapFile)
	if err != nil {
		return err
	}
	defer otuMap.Close()

	otuTab, err := otutab.CreateOutput(outDir, AbundanceFile)
	if err != nil {
		return err
	}
	defer otuTab.Close()

	if err := table.WriteSummary(stdout); err != nil {
		return err
	}
	if err := table.WriteMemberMap(otuMap); err != nil {
		return err
	}
	if err := table.WriteAbundance(otuTab, minClus); err != nil {
		return err
	}

	if err := otuMap.Close(); err != nil {
		return err
	}
	if err := otuTab.Close(); err != nil {
		return err
	}
	logger.Printf("Wrote %s and %s\n", otuMap.Name(), otuTab.Name())

	return nil
}
