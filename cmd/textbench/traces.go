package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dshills/textbench/internal/bench"
	"github.com/dshills/textbench/internal/trace"
)

var tracesFlags struct {
	config string
	stats  bool
	format string
}

var tracesCmd = &cobra.Command{
	Use:   "traces",
	Short: "List corpus traces",
	RunE:  listTraces,
}

var exportByteOffsets bool

var exportCmd = &cobra.Command{
	Use:   "export <name> <out>",
	Short: "Write a corpus trace back to disk",
	Long: `Export loads a registered trace and writes it to the given path,
gzip-compressed when the path ends in .gz. With --byte-offsets the exported
positions and delete counts are UTF-8 byte offsets instead of codepoints.`,
	Args: cobra.ExactArgs(2),
	RunE: exportTrace,
}

func init() {
	f := tracesCmd.PersistentFlags()
	f.StringVar(&tracesFlags.config, "config", "", "Path to TOML run configuration")

	tracesCmd.Flags().BoolVar(&tracesFlags.stats, "stats", false,
		"Load each trace and print corpus statistics")
	tracesCmd.Flags().StringVar(&tracesFlags.format, "format", "",
		"Output format: text or json (default: text on a terminal)")

	exportCmd.Flags().BoolVar(&exportByteOffsets, "byte-offsets", false,
		"Export the byte-offset variant")

	tracesCmd.AddCommand(exportCmd)
}

func loadCorpus(configPath string) (*trace.Registry, error) {
	if configPath == "" {
		return trace.DefaultRegistry(), nil
	}
	cfg, err := bench.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return &cfg.Corpus, nil
}

func listTraces(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(tracesFlags.format)
	if err != nil {
		return err
	}

	reg, err := loadCorpus(tracesFlags.config)
	if err != nil {
		return err
	}

	if tracesFlags.stats {
		return listTraceStats(reg, format)
	}

	type entry struct {
		Name string `json:"name"`
		Path string `json:"path"`
	}
	var entries []entry
	for _, name := range reg.Names() {
		path, err := reg.Path(name)
		if err != nil {
			return err
		}
		entries = append(entries, entry{Name: name, Path: path})
	}

	if format == formatJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFILE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.Path)
	}
	return tw.Flush()
}

func listTraceStats(reg *trace.Registry, format string) error {
	type entry struct {
		Name string `json:"name"`
		trace.Stats
	}
	var entries []entry
	for _, name := range reg.Names() {
		tr, err := reg.Load(name)
		if err != nil {
			return err
		}
		entries = append(entries, entry{Name: name, Stats: tr.Stats()})
	}

	if format == formatJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTXNS\tPATCHES\tINSERTED\tDELETED\tBYTES\tRUNES\tGRAPHEMES")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Name,
			p.Sprintf("%d", e.Txns),
			p.Sprintf("%d", e.Patches),
			p.Sprintf("%d", e.Inserted),
			p.Sprintf("%d", e.Deleted),
			p.Sprintf("%d", e.EndBytes),
			p.Sprintf("%d", e.EndRunes),
			p.Sprintf("%d", e.EndGraphemes))
	}
	return tw.Flush()
}

func exportTrace(cmd *cobra.Command, args []string) error {
	name, out := args[0], args[1]

	reg, err := loadCorpus(tracesFlags.config)
	if err != nil {
		return err
	}

	tr, err := reg.Load(name)
	if err != nil {
		return err
	}

	if exportByteOffsets {
		tr, err = tr.CharsToBytes()
		if err != nil {
			return err
		}
	}

	if err := trace.Save(tr, out); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s (%d patches)\n", name, out, tr.NumPatches())
	return nil
}
