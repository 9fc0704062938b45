package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/vovanwin/statictoml/internal/generator"
)

var (
	genRoot    string
	genOutput  string
	genVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "statictoml",
	Short:         "Generate static Go code from TOML files",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var genCmd = &cobra.Command{
	Use:   "gen [declaration files...]",
	Short: "Process declaration files and write generated sources",
	Long: `Process declaration files and write the generated sources next to them.

A declaration file is a Go source file containing statictoml.Static or
statictoml.Const variable declarations. For each declaration the referenced
TOML document is embedded as a typed Go value with one declared type per
table and array.

Relative document paths are resolved against the project root, taken from
--root or the ` + generator.RootEnv + ` environment variable.

Examples:
  statictoml gen config/include.go
  statictoml gen --root . config/include.go
  statictoml gen --output config/static.go config/include.go`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGen,
}

func init() {
	genCmd.Flags().StringVar(&genRoot, "root", "", "Project root for resolving document paths (default: $"+generator.RootEnv+")")
	genCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output file (default: <declaration file>_static.go, single input only)")
	genCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print one line per processed declaration")
	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	if genOutput != "" && len(args) > 1 {
		pterm.Error.Println("--output is only valid with a single declaration file")
		os.Exit(1)
	}

	opts := generator.Options{Root: genRoot, Output: genOutput}
	if genVerbose {
		opts.Logf = func(format string, a ...any) {
			pterm.Info.Printf(format+"\n", a...)
		}
	}

	for _, declFile := range args {
		result, err := generator.Generate(declFile, opts)
		if err != nil {
			pterm.Error.Printf("%s: %v\n", declFile, err)
			os.Exit(1)
		}
		pterm.Success.Printf("✓ Generated %s (%d declarations)\n", result.OutputPath, result.Declarations)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
