package main

import (
	"github.com/spf13/cobra"

	"github.com/mimeforge/mimetree/cmd/mimetree/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
