// ifprint prints the rows of a table whose value in one column is greater
// than a minimum, optionally keeping only some columns.
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
	"github.com/carbocation/otutab/colfilter"
	_ "github.com/carbocation/otutab/compileinfoprint"
)

var (
	STDOUT = bufio.NewWriterSize(os.Stdout, 4096)
)

var client *storage.Client

func main() {
	defer STDOUT.Flush()

	var input string
	opts := colfilter.Options{}
	flag.StringVar(&input, "input", "", "Table to filter. May also be given as the first positional argument.")
	flag.IntVar(&opts.Site, "site", 1, "1-based column to test.")
	flag.Float64Var(&opts.Mins, "mins", 0, "Rows whose tested value is at or below this are dropped.")
	flag.StringVar(&opts.Prints, "prints", "", "Comma-separated 1-based columns to print. Default is every column.")
	flag.StringVar(&opts.Delim, "delim", "", "Column delimiter. Default splits on whitespace; 'auto' detects it.")
	flag.Parse()

	if input == "" && flag.NArg() > 0 {
		input = flag.Arg(0)
	}

	if input == "" {
		flag.Usage()
		log.Fatalln("Must specify an --input file")
	}

	if otutab.NeedsStorageClient(input) {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	if err := run(input, opts, STDOUT, log.Default()); err != nil {
		STDOUT.Flush()
		log.Fatalln(err)
	}
}

func run(input string, opts colfilter.Options, stdout io.Writer, logger *log.Logger) error {
	logger.Printf("Reading rows from %s\n", input)
	f, err := otutab.OpenInput(input, client)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := colfilter.Filter(f, stdout, opts)
	if err != nil {
		return err
	}
	logger.Printf("%d rows passed\n", n)

	return nil
}
