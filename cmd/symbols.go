package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/smazurov/nucled/internal/led"
	"github.com/spf13/cobra"
)

// CreateSymbolsCmd creates the symbols command.
func CreateSymbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols",
		Short: "List LED and indicator names with their codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printSymbols(cmd.OutOrStdout())
		},
	}
}

func printSymbols(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "LED\tCODE")
	for _, l := range led.LEDs() {
		fmt.Fprintf(tw, "%s\t%d\n", l.Name, l.Code)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "INDICATOR\tCODE\tFIELDS")
	for _, ind := range led.Indicators() {
		fields := "-"
		if layout, ok := ind.Layout(); ok {
			names := make([]string, 0, len(layout.Fields()))
			for _, f := range layout.Fields() {
				names = append(names, string(f))
			}
			fields = strings.Join(names, ",")
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", ind.Name, ind.Code, fields)
	}

	return tw.Flush()
}
