package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/scriptlex/rbparse/internal/lexer"
	"github.com/scriptlex/rbparse/internal/source"
	"github.com/scriptlex/rbparse/internal/token"
	"github.com/spf13/cobra"
)

var (
	showSpan   bool
	showText   bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize source and print the resulting tokens",
	Long: `Tokenize a Ruby-style source file and print the resulting tokens.

If no file is provided, reads from stdin. Use -e to tokenize an inline
expression instead.

Examples:
  rbparse lex script.rb
  rbparse lex -e 'x = 1 + 2'
  rbparse lex --show-span --show-text script.rb`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexSource,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from a file")
	lexCmd.Flags().BoolVar(&showSpan, "show-span", false, "show each token's byte span")
	lexCmd.Flags().BoolVar(&showText, "show-text", true, "show each token's literal text")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only ILLEGAL tokens")
}

func lexSource(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	buf := source.New(filename, input)
	l := lexer.New(buf, lexer.WithFilename(filename))

	count, errCount := 0, 0
	for {
		t := l.TakeToken()
		if onlyErrors && t.Kind != token.ILLEGAL {
			if t.IsEOF() {
				break
			}
			continue
		}
		count++
		if t.Kind == token.ILLEGAL {
			errCount++
		}
		printToken(t)
		if t.IsEOF() {
			break
		}
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "---\ntotal tokens: %d\n", count)
		if errCount > 0 {
			fmt.Fprintf(os.Stderr, "errors: %d\n", errCount)
		}
	}
	if onlyErrors && errCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errCount)
	}
	return nil
}

func printToken(t token.Token) {
	out := fmt.Sprintf("%-14s", t.Kind.String())
	if showText && t.Text != "" {
		out += fmt.Sprintf(" %q", t.Text)
	}
	if showSpan {
		out += " @" + t.Span.String()
	}
	fmt.Println(out)
}

func readSource(eval string, args []string) ([]byte, string, error) {
	if eval != "" {
		return []byte(eval), "<eval>", nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return data, args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, "<stdin>", nil
}
