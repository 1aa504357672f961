package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mimeforge/mimetree/message/walker"
	"github.com/mimeforge/mimetree/parser"
	"github.com/mimeforge/mimetree/part"
)

var parseCmd = &cobra.Command{
	Use:   "parse message",
	Short: "Parse a message and print its part tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	root, err := parser.Parse(context.Background(), f, parser.WithUnlimitedRecursion())
	if err != nil {
		return err
	}

	var w walker.PartWalker = func(depth, i int, p part.Part) error {
		mt, _ := p.Headers().GetMediaType()
		if mt == "" {
			mt = "(none)"
		}

		var flags []string
		if p.IsMultipart() {
			flags = append(flags, "multipart")
		}
		if p.Truncated() {
			flags = append(flags, "truncated")
		}
		if p.MalformedBoundary() {
			flags = append(flags, "malformed-boundary")
		}

		line := fmt.Sprintf("%s[%d] %s", strings.Repeat("  ", depth), i, mt)
		if len(flags) > 0 {
			line += " (" + strings.Join(flags, ", ") + ")"
		}
		fmt.Println(line)
		return nil
	}

	return w.Walk(root)
}
