// corepan computes core and pan species accumulation curves per sample group
// from a read-level species annotation, prints them, and plots them to
// <prefix>.core.species.png and <prefix>.pan.species.png.
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
	"github.com/carbocation/otutab/corepan"
)

var (
	STDOUT = bufio.NewWriterSize(os.Stdout, 4096)
)

var client *storage.Client

func main() {
	defer STDOUT.Flush()

	var anno, group, prefix string
	flag.StringVar(&anno, "anno", "", "Species annotation: read id (sample_read) then species. May also be given as the first positional argument.")
	flag.StringVar(&group, "group", "", "Group file: sample then group, tab-separated.")
	flag.StringVar(&prefix, "prefix", "out", "Prefix for the output plots.")
	flag.Parse()

	if anno == "" && flag.NArg() > 0 {
		anno = flag.Arg(0)
	}

	if anno == "" || group == "" {
		flag.Usage()
		log.Fatalln("Must specify an --anno and a --group file")
	}

	if otutab.NeedsStorageClient(anno, group) {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	if err := run(anno, group, prefix, STDOUT, log.Default()); err != nil {
		STDOUT.Flush()
		log.Fatalln(err)
	}
}

func run(anno, group, prefix string, stdout io.Writer, logger *log.Logger) error {
	gf, err := otutab.OpenInput(group, client)
	if err != nil {
		return err
	}
	defer gf.Close()

	groups, err := corepan.LoadGroups(gf)
	if err != nil {
		return err
	}

	logger.Printf("Reading annotation from %s\n", anno)
	af, err := otutab.OpenInput(anno, client)
	if err != nil {
		return err
	}
	defer af.Close()

	occ, err := corepan.LoadAnnotation(af, groups, logger)
	if err != nil {
		return err
	}

	curves := corepan.AccumulateAll(groups, occ, logger)
	if err := corepan.WriteCurves(stdout, curves); err != nil {
		return err
	}

	for _, plot := range []struct {
		name string
		pick corepan.Series
	}{
		{prefix + ".core.species.png", corepan.CoreSeries},
		{prefix + ".pan.species.png", corepan.PanSeries},
	} {
		drawn, err := corepan.Plot(plot.name, curves, plot.pick)
		if err != nil {
			return err
		}
		if !drawn {
			logger.Printf("Not enough samples per group to plot %s\n", plot.name)
			continue
		}
		logger.Printf("Wrote %s\n", plot.name)
	}

	return nil
}
