package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"astrodash/internal"
	"astrodash/internal/config"
	"astrodash/internal/dataset"
	"astrodash/internal/pipeline"
	"astrodash/internal/server"
	"astrodash/internal/session"
	"astrodash/internal/storage"
	"astrodash/internal/watcher"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "ingest":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", cfg.DataPath, "path to the participant table")
		format := fs.String("format", cfg.DataFormat, "csv|xlsx|html")
		_ = fs.Parse(os.Args[2:])

		records, err := dataset.Load(*format, *input)
		must(err)
		must(db.ReplaceRecords(records, *input))
		idx := dataset.BuildIndex(records)
		fmt.Printf("ingest done source=%s records=%d years=[%d,%d] nationalities=%d\n",
			*input, len(records), idx.YearMin, idx.YearMax, len(idx.Nationalities))
	case "charts":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "load from file instead of the snapshot")
		format := fs.String("format", cfg.DataFormat, "csv|xlsx|html")
		filterArgs := addFilterFlags(fs)
		_ = fs.Parse(os.Args[2:])

		records, err := loadRecords(db, *input, *format)
		must(err)
		s := session.New(records, cfg.TopNationalities)
		set := s.Charts(resolveFilters(s, filterArgs))
		blob, err := json.MarshalIndent(set, "", "  ")
		must(err)
		fmt.Println(string(blob))
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "load from file instead of the snapshot")
		format := fs.String("format", cfg.DataFormat, "csv|xlsx|html")
		out := fs.String("out", "", "output xlsx path")
		filterArgs := addFilterFlags(fs)
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}

		records, err := loadRecords(db, *input, *format)
		must(err)
		s := session.New(records, cfg.TopNationalities)
		set := s.Charts(resolveFilters(s, filterArgs))
		must(pipeline.ExportChartsToXLSX(set, *out))
		fmt.Printf("exported charts for %d records to %s\n", len(records), *out)
	case "serve":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		addr := fs.String("addr", cfg.HTTPAddr, "listen address")
		input := fs.String("input", "", "load from file instead of the snapshot")
		format := fs.String("format", cfg.DataFormat, "csv|xlsx|html")
		_ = fs.Parse(os.Args[2:])

		records, err := loadRecords(db, *input, *format)
		must(err)
		s := session.New(records, cfg.TopNationalities)
		srv := server.New(s)
		fmt.Printf("serving %d records on %s\n", len(records), *addr)
		must(http.ListenAndServe(*addr, srv.Router()))
	case "watch":
		// The watcher performs the initial ingest on its first cycle.
		s := session.New(nil, cfg.TopNationalities)
		w := watcher.NewService(db, cfg, s)
		must(w.Run(context.Background()))
	default:
		usage()
		os.Exit(1)
	}
}

type filterFlags struct {
	from          *int
	to            *int
	genders       *string
	nationalities *string
}

func addFilterFlags(fs *flag.FlagSet) filterFlags {
	return filterFlags{
		from:          fs.Int("from", 0, "first year of the inclusive range"),
		to:            fs.Int("to", 0, "last year of the inclusive range"),
		genders:       fs.String("genders", "", "comma-separated gender selection"),
		nationalities: fs.String("nationalities", "", "comma-separated nationality selection"),
	}
}

// resolveFilters fills unset flags from the dataset's own bounds so bare
// invocations cover everything present in the data.
func resolveFilters(s *session.Session, args filterFlags) pipeline.Filters {
	f := s.DefaultFilters()
	if *args.from != 0 {
		f.YearFrom = *args.from
	}
	if *args.to != 0 {
		f.YearTo = *args.to
	}
	if strings.TrimSpace(*args.genders) != "" {
		f.Genders = splitCSV(*args.genders)
	}
	if strings.TrimSpace(*args.nationalities) != "" {
		f.Nationalities = splitCSV(*args.nationalities)
	}
	return f
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func loadRecords(db *storage.DB, input, format string) ([]internal.Record, error) {
	if strings.TrimSpace(input) != "" {
		return dataset.Load(format, input)
	}
	records, err := db.ListRecords()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("snapshot is empty: run ingest first or pass --input")
	}
	return records, nil
}

func usage() {
	fmt.Println("usage: astrodash <command>")
	fmt.Println("commands:")
	fmt.Println("  ingest [--input=path] [--format=csv|xlsx|html]")
	fmt.Println("  charts [--input=path] [--from=1961 --to=2019 --genders=... --nationalities=...]")
	fmt.Println("  export:xlsx --out=./out/charts.xlsx [filter flags]")
	fmt.Println("  serve [--addr=:8080] [--input=path]")
	fmt.Println("  watch")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
