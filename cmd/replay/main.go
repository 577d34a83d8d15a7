package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	persistlog "gridtactics.dev/internal/persistence/log"
)

func main() {
	var (
		logPath = flag.String("matchlog", "", "path to .jsonl.zst match record")
		summary = flag.Bool("summary", false, "print per-event counts instead of the full transcript")
	)
	flag.Parse()

	if *logPath == "" {
		fmt.Fprintln(os.Stderr, "missing -matchlog")
		os.Exit(2)
	}

	records, err := persistlog.ReadAll(*logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read match log:", err)
		os.Exit(1)
	}

	if *summary {
		counts := map[string]int{}
		for _, rec := range records {
			counts[rec.Event]++
		}
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%6d  %s\n", counts[name], name)
		}
		fmt.Printf("%6d  total\n", len(records))
		return
	}

	for _, rec := range records {
		if len(rec.Payload) == 0 {
			fmt.Printf("%6d  %s\n", rec.Seq, rec.Event)
			continue
		}
		fmt.Printf("%6d  %-24s %s\n", rec.Seq, rec.Event, rec.Payload)
	}
}
