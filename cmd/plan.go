package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/nucled/internal/led"
	"github.com/smazurov/nucled/internal/startup"
	"github.com/spf13/cobra"
)

// CreatePlanCmd creates the plan command.
func CreatePlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the control file commands the lights file would write",
		Long: `Resolves the lights configuration exactly like a real run and prints each command line, ` +
			`without touching the control file or the run log.`,
		Args: cobra.NoArgs,
		Run: humacli.WithOptions(func(cmd *cobra.Command, _ []string, opts *Options) {
			if err := plan(cmd.OutOrStdout(), opts.Lights); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "plan failed:", err)
				os.Exit(1)
			}
		}),
	}
}

// plan writes the command lines for lightsFile to w. Lines produced before a
// failing setting are still written, matching what a real run would leave.
// Driver logging is discarded so w only carries command lines.
func plan(w io.Writer, lightsFile string) error {
	quiet := slog.New(slog.DiscardHandler)
	rec := led.NewRecorder()
	driver := startup.NewDriver(led.NewEmitter(rec, quiet), startup.Options{LightsFile: lightsFile}, quiet, nil)

	outcome := driver.Run()
	for _, line := range rec.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return outcome.Err
}
