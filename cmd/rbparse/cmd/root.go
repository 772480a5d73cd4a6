package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version = "0.1.0-dev"
)

var evalExpr string

var rootCmd = &cobra.Command{
	Use:   "rbparse",
	Short: "A Ruby-syntax lexer and parser",
	Long: `rbparse scans and parses Ruby-style source into a span-annotated
syntax tree.

It implements a context-sensitive lexer (string/heredoc/regexp/word-array
literal readers layered over classical byte dispatch) and a Pratt-style
recursive-descent parser with checkpoint-based backtracking.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
`))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
