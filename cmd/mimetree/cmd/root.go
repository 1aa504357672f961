// Package cmd implements the mimetree CLI: small exercises of the parser
// and writer packages against real message files, grounded on the
// teacher's test/roundtrip tool.
package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "mimetree",
	Short: "Parse and re-serialize MIME messages",
}

// Execute runs the mimetree CLI.
func Execute() error {
	return rootCmd.Execute()
}
