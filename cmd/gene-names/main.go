// Command gene-names derives candidate gene identifiers from the filenames
// in a raw-data directory (everything before the first '.' of each entry)
// and writes them one per line, ready for genepack's -genes-file flag.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

func deriveNames(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	var names []string
	for _, entry := range entries {
		name := entry
		if i := strings.IndexByte(entry, '.'); i >= 0 {
			name = entry[:i]
		}
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("gene-names", flag.ContinueOnError)
	dir := fs.String("dir", ".", "directory whose filenames name the genes")
	out := fs.String("o", "", "write names to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		return fmt.Errorf("list %s: %w", *dir, err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	names := deriveNames(files)

	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create %s: %w", *out, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "gene-names: %v\n", err)
		os.Exit(1)
	}
}
