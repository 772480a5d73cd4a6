package cmd

import (
	"fmt"
	"os"

	"github.com/scriptlex/rbparse/internal/diag"
	"github.com/scriptlex/rbparse/internal/parser"
	"github.com/spf13/cobra"
)

var (
	parseExpression bool
	parseDumpAST    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse source and display the syntax tree",
	Long: `Parse Ruby-style source code and display its syntax tree.

If no file is provided, reads from stdin. Use -e to parse a single
expression from the command line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse an expression from the command line")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", true, "dump the full syntax tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	var input []byte
	var filename string
	var err error

	if parseExpression {
		if len(args) == 0 {
			return fmt.Errorf("no expression provided")
		}
		input, filename = []byte(args[0]), "<eval>"
	} else {
		input, filename, err = readSource("", args)
		if err != nil {
			return err
		}
	}

	program, warnings, perr := parser.Parse(input, parser.WithFilename(filename))
	if perr != nil {
		d := diag.FromParseError(perr)
		fmt.Fprintln(os.Stderr, d.String())
		return fmt.Errorf("parse failed")
	}

	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, w.String())
	}

	if parseDumpAST {
		diag.DumpAST(os.Stdout, program)
	}
	return nil
}
