package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spicery/regex-tokenizer/pkg/tokenizer"
)

const (
	version = "0.1.0"
	usage   = `regex-tokenizer - A table-driven regular expression tokenizer

Usage:
  regex-tokenizer [options]

Options:
  -h, --help            Show this help message
  -v, --version         Show version information
  --input <glob>        Input file or glob pattern, ** allowed (defaults to stdin)
  --output <file>       Output file (defaults to stdout)
  --rules <file>        YAML rules file (defaults to the built-in rules)
  --make-rules          Write the built-in rules as YAML to stdout
  --exit0               Exit with code 0 even on tokenisation errors (suppress stderr)

Examples:
  regex-tokenizer                                    # Read from stdin, write to stdout
  regex-tokenizer --input source.txt                 # Read from file, write to stdout
  regex-tokenizer --input 'src/**/*.expr'            # Tokenize every matching file
  regex-tokenizer --rules custom.yaml --input source.txt --output tokens.json
  regex-tokenizer --make-rules > rules.yaml          # Start a rules file from the defaults
  echo "let x = 1" | regex-tokenizer

The tokenizer outputs one JSON token object per line. When --input is given
every token also carries the name of the file it came from.
`
)

// outputToken is the JSON shape of one output line.
type outputToken struct {
	File string `json:"file,omitempty"`
	tokenizer.Token[string]
}

func main() {
	var showHelp, showVersion, exit0, makeRules bool
	var inputPattern, outputFile, rulesFile string

	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&showHelp, "help", false, "Show help")
	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&exit0, "exit0", false, "Exit with code 0 even on errors")
	flag.BoolVar(&makeRules, "make-rules", false, "Generate default rules YAML")
	flag.StringVar(&inputPattern, "input", "", "Input file or glob (defaults to stdin)")
	flag.StringVar(&outputFile, "output", "", "Output file (defaults to stdout)")
	flag.StringVar(&rulesFile, "rules", "", "YAML rules file (optional)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("regex-tokenizer version %s\n", version)
		os.Exit(0)
	}

	if makeRules {
		data, err := tokenizer.DefaultRules().Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating default rules: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(data))
		os.Exit(0)
	}

	// Reject any positional arguments
	if len(flag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Error: Unexpected positional arguments. Use --input and --output flags instead.\n\n")
		flag.Usage()
		os.Exit(1)
	}

	rules := tokenizer.DefaultRules()
	if rulesFile != "" {
		var err error
		rules, err = tokenizer.LoadRulesFile(rulesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading rules file '%s': %v\n", rulesFile, err)
			os.Exit(1)
		}
	}

	ruleSet, err := rules.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error compiling rules: %v\n", err)
		os.Exit(1)
	}

	var inputFiles []string
	if inputPattern != "" {
		inputFiles, err = doublestar.FilepathGlob(inputPattern, doublestar.WithFilesOnly())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error expanding input pattern '%s': %v\n", inputPattern, err)
			os.Exit(1)
		}
		if len(inputFiles) == 0 {
			fmt.Fprintf(os.Stderr, "Error: no files match '%s'\n", inputPattern)
			os.Exit(1)
		}
	}

	// Prepare output destination
	var output io.Writer
	var outputCloser io.Closer

	if outputFile == "" {
		output = os.Stdout
	} else {
		file, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file '%s': %v\n", outputFile, err)
			os.Exit(1)
		}
		output = file
		outputCloser = file
	}

	var tokenizeErr error
	if inputFiles == nil {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading from stdin: %v\n", err)
			os.Exit(1)
		}
		tokenizeErr = writeTokens(output, ruleSet, "", string(input))
	} else {
		for _, filename := range inputFiles {
			input, err := os.ReadFile(filename)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading file '%s': %v\n", filename, err)
				os.Exit(1)
			}
			if err := writeTokens(output, ruleSet, filename, string(input)); err != nil {
				tokenizeErr = fmt.Errorf("%s: %w", filename, err)
				break
			}
		}
	}

	// Close output file if we opened one
	if outputCloser != nil {
		if err := outputCloser.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing output file '%s': %v\n", outputFile, err)
			os.Exit(1)
		}
	}

	// Handle tokenisation error after outputting tokens
	if tokenizeErr != nil {
		if exit0 {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Tokenization error: %v\n", tokenizeErr)
		os.Exit(1)
	}
}

// writeTokens writes the tokens of input as JSON lines. Tokens scanned before
// a tokenisation error are written before the error is returned.
func writeTokens(w io.Writer, ruleSet *tokenizer.RuleSet[string], filename, input string) error {
	encoder := json.NewEncoder(w)
	for token, err := range ruleSet.Tokens(input) {
		if err != nil {
			return err
		}
		if err := encoder.Encode(outputToken{File: filename, Token: token}); err != nil {
			fmt.Fprintf(os.Stderr, "JSON encoding error: %v\n", err)
			os.Exit(1)
		}
	}
	return nil
}
