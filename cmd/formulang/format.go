package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joverzhang/formulang/formulang"
)

var formatCmd = &cobra.Command{
	Use:   "format [expression]",
	Short: "Print a formula expression's canonical form",
	Long:  "Reads a formula expression (argument, or stdin if omitted) and prints its canonical formatted text. If the input has a syntax error, prints its diagnostics instead and exits non-zero.",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args)
		if err != nil {
			return err
		}
		trace("formatting %d bytes", len(source))

		out := formulang.Analyze(source)
		if out.HasSyntaxErrors() {
			fmt.Print(formulang.FormatDiagnostics(source, "<input>", out.Diagnostics))
			os.Exit(1)
		}

		fmt.Print(formulang.FormatExpr(out))
		return nil
	},
}
