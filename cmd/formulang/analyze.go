package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joverzhang/formulang/formulang"
)

var analyzeContextPath string

func init() {
	analyzeCmd.Flags().StringVar(&analyzeContextPath, "context", "", "path to a JSON context file (properties + completion settings)")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [expression]",
	Short: "Lex, parse, and type-check a formula expression",
	Long:  "Reads a formula expression (argument, or stdin if omitted), lexes and parses it, then type-checks it against an optional --context, printing diagnostics and the inferred type.",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args)
		if err != nil {
			return err
		}
		trace("analyzing %d bytes", len(source))

		out := formulang.Analyze(source)
		ctx, err := loadContext(analyzeContextPath)
		if err != nil {
			return err
		}

		var diags = out.Diagnostics
		var ty string
		if !out.HasSyntaxErrors() {
			t, semDiags := formulang.AnalyzeSemantic(out.Expr, ctx)
			diags = append(diags, semDiags...)
			ty = t.String()
		}

		if len(diags) > 0 {
			fmt.Print(formulang.FormatDiagnostics(source, "<input>", diags))
		}
		if out.HasSyntaxErrors() {
			os.Exit(1)
		}

		color.New(color.FgGreen).Printf("type: %s\n", ty)
		return nil
	},
}
