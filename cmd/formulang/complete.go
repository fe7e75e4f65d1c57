package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joverzhang/formulang/formulang"
)

var (
	completeCursor      int
	completeContextPath string
)

func init() {
	completeCmd.Flags().IntVar(&completeCursor, "cursor", 0, "byte offset of the cursor into the expression")
	completeCmd.Flags().StringVar(&completeContextPath, "context", "", "path to a JSON context file (properties + completion settings)")
}

var completeCmd = &cobra.Command{
	Use:   "complete [expression]",
	Short: "List completions and signature help at a cursor position",
	Long:  "Reads a formula expression (argument, or stdin if omitted) and prints the ranked completion candidates, and signature help, for --cursor.",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args)
		if err != nil {
			return err
		}
		ctx, err := loadContext(completeContextPath)
		if err != nil {
			return err
		}
		cfg, err := loadCompletionConfig(completeContextPath)
		if err != nil {
			return err
		}
		trace("completing %d bytes at cursor %d", len(source), completeCursor)

		out := formulang.Complete(source, uint32(completeCursor), ctx, cfg)

		if out.Signature != nil {
			fmt.Printf("signature: %s (active param %d)\n", out.Signature.Label, out.Signature.ActiveParam)
			if out.Signature.Receiver != "" {
				fmt.Printf("  receiver: %s\n", out.Signature.Receiver)
			}
		}

		preferred := make(map[int]bool, len(out.PreferredIndices))
		for _, i := range out.PreferredIndices {
			preferred[i] = true
		}
		for i, r := range out.Items {
			marker := "  "
			print := fmt.Sprintf("%s %s", r.Item.Label, r.Item.Detail)
			if preferred[i] {
				marker = "* "
				color.New(color.FgCyan).Printf("%s%s\n", marker, print)
				continue
			}
			fmt.Printf("%s%s\n", marker, print)
		}
		return nil
	},
}
