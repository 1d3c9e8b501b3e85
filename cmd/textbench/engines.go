package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/textbench/internal/engine"
)

var enginesFormat string

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List registered engines and their capabilities",
	RunE:  listEngines,
}

func init() {
	enginesCmd.Flags().StringVar(&enginesFormat, "format", "",
		"Output format: text or json (default: text on a terminal)")
}

func listEngines(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(enginesFormat)
	if err != nil {
		return err
	}

	infos := engine.Infos()

	if format == formatJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tUNIT\tDOWNSTREAM\tNATIVE REPLACE")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			info.Name, info.Unit, yesNo(info.Downstream), yesNo(info.NativeReplace))
	}
	return tw.Flush()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
