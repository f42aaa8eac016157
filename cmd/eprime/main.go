package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/wdm0006/eprime/pkg/convert"
	"github.com/wdm0006/eprime/pkg/io/logio"
	"github.com/wdm0006/eprime/pkg/profile"
	"github.com/wdm0006/eprime/pkg/transform/backfill"
)

var (
	version = "0.1.0-dev"
)

// operation is one named conversion with its declared argument span.
// Registry dispatch keeps unknown names and wrong arities fatal before
// any file is touched.
type operation struct {
	minArgs int
	maxArgs int
	usage   string
	help    string
	run     func(ctx context.Context, args []string) error
}

var ops = map[string]operation{
	"text2csv": {
		minArgs: 2, maxArgs: 2,
		usage: "text2csv <text_file> <out_file>",
		help:  "convert a raw experiment log to csv, one row per log frame",
		run: func(ctx context.Context, args []string) error {
			return report(convert.TextToCSV(ctx, args[0], args[1]))
		},
	},
	"text2rcsv": {
		minArgs: 4, maxArgs: 4,
		usage: "text2rcsv <text_file> <edat_file> <param_file> <out_file>",
		help:  "convert a raw experiment log to reduced csv using a task param file",
		run: func(ctx context.Context, args []string) error {
			return report(convert.TextToRCSV(ctx, args[0], args[1], args[2], args[3]))
		},
	},
	"etext2rcsv": {
		minArgs: 2, maxArgs: 3,
		usage: "etext2rcsv <in_file> <param_file> [out_file]",
		help:  "reduce an exported 'E-Prime text' table to the configured headers",
		run: func(ctx context.Context, args []string) error {
			out := ""
			if len(args) == 3 {
				out = args[2]
			}
			return report(convert.EtextToRCSV(ctx, args[0], args[1], out))
		},
	},
	"text2jsonl": {
		minArgs: 2, maxArgs: 2,
		usage: "text2jsonl <text_file> <out_file>",
		help:  "convert a raw experiment log to one JSON object per log frame",
		run: func(ctx context.Context, args []string) error {
			return report(convert.TextToJSONL(ctx, args[0], args[1]))
		},
	},
	"text2parquet": {
		minArgs: 2, maxArgs: 2,
		usage: "text2parquet <text_file> <out_file>",
		help:  "convert a raw experiment log to parquet",
		run: func(ctx context.Context, args []string) error {
			return report(convert.TextToParquet(ctx, args[0], args[1]))
		},
	},
	"profile": {
		minArgs: 1, maxArgs: 1,
		usage: "profile <text_file>",
		help:  "print a per-column summary of a raw experiment log",
		run: func(ctx context.Context, args []string) error {
			rdr := logio.NewReader(logio.ReaderOptions{})
			f, err := rdr.ReadFile(args[0])
			if err != nil {
				return err
			}
			if w := rdr.Warnings(); w != "" {
				fmt.Fprintln(os.Stderr, "warning:", w)
			}
			f, err = (&backfill.Singleton{}).Apply(ctx, f)
			if err != nil {
				return err
			}
			fmt.Print(profile.ReportText(profile.Describe(f), 5))
			return nil
		},
	},
}

func report(out string, err error) error {
	if err != nil {
		return err
	}
	fmt.Printf("Output file successfully created- %s\n", out)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: eprime [-version] <operation> <args...>")
	fmt.Fprintln(os.Stderr, "operations:")
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-55s %s\n", ops[name].usage, ops[name].help)
	}
}

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println("eprime", version)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	op, ok := ops[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown operation %q\n", args[0])
		usage()
		os.Exit(2)
	}
	rest := args[1:]
	if len(rest) < op.minArgs || len(rest) > op.maxArgs {
		fmt.Fprintf(os.Stderr, "usage: eprime %s\n", op.usage)
		os.Exit(2)
	}

	if err := op.run(context.Background(), rest); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
