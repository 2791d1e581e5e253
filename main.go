package main

import (
	"github.com/cottand/euf/cmd"
	"github.com/spf13/cobra"
	"os"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		//_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "euf [subcommand]",
	Short: "euf\n a congruence-closure core for deciding equality with uninterpreted functions",
	Args:  cobra.MinimumNArgs(1),
	//SilenceErrors: true,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.EufCmd)
}
