// Command eddy runs the word count example pipeline from the command line:
// it reads a local or remote text file, counts the words through both the
// collection path and the frame path, and writes the results to the
// configured sinks.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "eddy",
	Short:         "Run and inspect word count pipelines",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	rootCmd.AddCommand(wordcountCmd, graphCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
