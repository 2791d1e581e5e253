package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cottand/euf/internal/log"
	"github.com/cottand/euf/internal/script"
	"github.com/spf13/cobra"
)

var EufCmd = &cobra.Command{
	Use:          "euf ./script.euf",
	Short:        "Run a congruence-closure script against the euf engine",
	RunE:         runEuf,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

var eufLogLevel *int

func init() {
	eufLogLevel = EufCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

func runEuf(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*eufLogLevel))

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("could not open script: %w", err)
	}
	defer f.Close()

	forms, err := script.Parse(f)
	if err != nil {
		return fmt.Errorf("could not parse script: %w", err)
	}

	interp := script.NewInterp(cmd.OutOrStdout())
	if err := interp.Run(forms); err != nil {
		return fmt.Errorf("script failed: %w", err)
	}
	return nil
}
