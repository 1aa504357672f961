package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/mimeforge/mimetree/parser"
	"github.com/mimeforge/mimetree/writer"
)

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip message",
	Short: "Parse a message, write it back out, and diff the result against the original",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoundtrip,
}

func init() {
	rootCmd.AddCommand(roundtripCmd)
}

func runRoundtrip(_ *cobra.Command, args []string) error {
	path := args[0]

	msgFile, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = msgFile.Close() }()

	root, err := parser.Parse(context.Background(), msgFile, parser.WithUnlimitedRecursion())
	if err != nil {
		return err
	}

	rtFile, err := os.CreateTemp(os.TempDir(), "rtmsg-")
	if err != nil {
		return err
	}
	defer func() { _ = rtFile.Close() }()

	if _, err := writer.Write(root, rtFile); err != nil {
		return err
	}

	fmt.Printf("path = %s\n", path)
	fmt.Printf("tmp  = %s\n", rtFile.Name())

	diff := exec.Command("diff", "-u", path, rtFile.Name())
	diff.Stdout = os.Stdout
	_ = diff.Run()
	return nil
}
