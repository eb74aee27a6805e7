package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dbschema-go/dbschema/cli/internal/ui"
	"github.com/dbschema-go/dbschema/ir"
	"github.com/dbschema-go/dbschema/loader"
)

var (
	validateVarFlags []string
	validateVarFile  string
	validateStrict   bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a schema configuration",
	Long: `Validate parses, evaluates, extracts and lowers a schema
configuration, then runs the IR validator against it. path defaults to
the current directory's main.hcl.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringArrayVar(&validateVarFlags, "var", nil, "set a top-level variable (key=value), repeatable")
	validateCmd.Flags().StringVar(&validateVarFile, "var-file", "", "path to a var-assignment file")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "fail on warnings the validator otherwise tolerates")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	ui.PrintHeader("dbschema", "Validate")

	vars, err := rootVars(validateVarFlags, validateVarFile)
	if err != nil {
		return err
	}

	ld := loader.NewOSLoader()
	result, err := compile(ld, path, vars, validateStrict)
	if err != nil {
		printDiagnostic(ld, err)
		return fmt.Errorf("validation failed")
	}

	absPath, _ := filepath.Abs(path)
	ui.PrintSuccess("Schema is valid: %s", absPath)

	fmt.Println()
	ui.PrintSection("Summary")
	ui.PrintList([]string{
		fmt.Sprintf("%d table(s)", len(result.cfg.Tables)),
		fmt.Sprintf("%d enum(s)", len(result.cfg.Enums)),
		fmt.Sprintf("%d view(s)", len(result.cfg.Views)+len(result.cfg.Materialized)),
		fmt.Sprintf("%d index(es)", len(result.cfg.Indexes)),
		fmt.Sprintf("%d function(s)", len(result.cfg.Functions)),
		fmt.Sprintf("%d test(s)", len(result.cfg.Tests)),
	})

	if len(result.cfg.Tables) > 0 {
		fmt.Println()
		ui.PrintSection("Tables")
		for _, t := range result.cfg.Tables {
			ui.PrintInfo("%s (%d columns)", ir.EffectiveName(t.Name, t.AltName), len(t.Columns))
		}
	}

	return nil
}
