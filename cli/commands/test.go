package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbschema-go/dbschema/cli/internal/config"
	"github.com/dbschema-go/dbschema/cli/internal/ui"
	"github.com/dbschema-go/dbschema/loader"
	"github.com/dbschema-go/dbschema/testrunner"
	"github.com/dbschema-go/dbschema/testrunner/pgdriver"
	"github.com/dbschema-go/dbschema/testrunner/pglite"
)

var (
	testVarFlags []string
	testVarFile  string
	testDSN      string
	testPglite   string
	testNames    []string
	testTimeout  time.Duration
)

var testCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Run a schema's embedded tests",
	Long: `Test compiles the schema at path and runs every top-level
test block against either a real Postgres instance (--dsn) or an
in-process pglite WASM instance (--pglite), one transaction per test,
rolled back unconditionally afterward (spec.md's test-runner algorithm).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTest,
}

func init() {
	testCmd.Flags().StringArrayVar(&testVarFlags, "var", nil, "set a top-level variable (key=value), repeatable")
	testCmd.Flags().StringVar(&testVarFile, "var-file", "", "path to a var-assignment file")
	testCmd.Flags().StringVar(&testDSN, "dsn", "", "Postgres connection string to run tests against")
	testCmd.Flags().StringVar(&testPglite, "pglite", "", "path to a pglite WASM module to run tests against in-process")
	testCmd.Flags().StringArrayVar(&testNames, "name", nil, "restrict to a test name, repeatable (default: all)")
	testCmd.Flags().DurationVar(&testTimeout, "timeout", 60*time.Second, "overall run timeout")

	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	if testDSN == "" && testPglite == "" {
		if cfg, err := config.LoadConfig(); err == nil && cfg.DatabaseURL != "" {
			testDSN = cfg.DatabaseURL
		}
	}
	if (testDSN == "") == (testPglite == "") {
		return fmt.Errorf("exactly one of --dsn or --pglite is required")
	}

	ui.PrintHeader("dbschema", "Test")

	vars, err := rootVars(testVarFlags, testVarFile)
	if err != nil {
		return err
	}

	ld := loader.NewOSLoader()
	result, err := compile(ld, path, vars, false)
	if err != nil {
		printDiagnostic(ld, err)
		return fmt.Errorf("test run aborted: schema does not compile")
	}

	if len(result.cfg.Tests) == 0 {
		ui.PrintWarning("no test blocks found")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	driver, closeDriver, err := openTestDriver(ctx)
	if err != nil {
		return err
	}
	defer closeDriver()

	summary, err := testrunner.Run(ctx, driver, result.cfg, nameFilterSet(testNames))
	if err != nil {
		return fmt.Errorf("test run failed: %w", err)
	}

	for _, r := range summary.Results {
		if r.Passed {
			ui.PrintSuccess("%s", r.Name)
		} else {
			ui.PrintError("%s: %s", r.Name, r.Message)
		}
	}

	fmt.Println()
	ui.PrintSection("Summary")
	ui.PrintList([]string{
		fmt.Sprintf("%d total", summary.Total),
		fmt.Sprintf("%d passed", summary.Passed),
		fmt.Sprintf("%d failed", summary.Failed),
	})

	if summary.Failed > 0 {
		os.Exit(1)
	}
	return nil
}

// openTestDriver opens either a real-Postgres or a pglite driver
// depending on which flag was set, and returns a close func valid
// either way.
func openTestDriver(ctx context.Context) (testrunner.Driver, func(), error) {
	if testDSN != "" {
		d, err := pgdriver.New(ctx, testDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to %s: %w", testrunner.RedactDSN(testDSN), err)
		}
		return d, func() { d.Close() }, nil
	}

	d, err := pglite.Open(ctx, testPglite)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start pglite: %w", err)
	}
	return d, func() { d.Close() }, nil
}
