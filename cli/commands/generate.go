package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dbschema-go/dbschema/backend"
	"github.com/dbschema-go/dbschema/cli/internal/ui"
	"github.com/dbschema-go/dbschema/cli/internal/watch"
	"github.com/dbschema-go/dbschema/loader"
)

var (
	generateVarFlags []string
	generateVarFile  string
	generateStrict   bool
	generateBackend  string
	generateOutput   string
	generateWatch    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Compile a schema configuration into an output artifact",
	Long: `Generate runs the full compiler pipeline against path (a
directory, resolved to its main.hcl, or a file), then emits the
resolved configuration through one of the postgres, prisma or json
backends.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringArrayVar(&generateVarFlags, "var", nil, "set a top-level variable (key=value), repeatable")
	generateCmd.Flags().StringVar(&generateVarFile, "var-file", "", "path to a var-assignment file")
	generateCmd.Flags().BoolVar(&generateStrict, "strict", false, "reject constructs a backend cannot faithfully represent")
	generateCmd.Flags().StringVarP(&generateBackend, "backend", "b", "postgres", "output backend: postgres, prisma or json")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output file path (default: stdout)")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "re-generate whenever the entry file changes")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	if generateWatch {
		return runGenerateWatch(path)
	}

	return generateOnce(path)
}

func generateOnce(path string) error {
	kind, err := backend.Parse(generateBackend)
	if err != nil {
		return err
	}

	vars, err := rootVars(generateVarFlags, generateVarFile)
	if err != nil {
		return err
	}

	ld := loader.NewOSLoader()
	result, err := compile(ld, path, vars, generateStrict)
	if err != nil {
		printDiagnostic(ld, err)
		return fmt.Errorf("generate failed")
	}

	output, err := backend.Emit(result.cfg, kind, generateStrict, topLevelVarsValue(result))
	if err != nil {
		return fmt.Errorf("emit failed: %w", err)
	}

	if generateOutput == "" {
		fmt.Print(output)
		return nil
	}

	if err := os.WriteFile(generateOutput, []byte(output), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", generateOutput, err)
	}
	ui.PrintSuccess("Wrote %s (%s)", generateOutput, kind.String())
	return nil
}

// runGenerateWatch re-runs generateOnce every time the entry file
// changes, until interrupted. Output always goes to --output here,
// since a stdout stream that resets on every edit isn't useful.
func runGenerateWatch(path string) error {
	if generateOutput == "" {
		return fmt.Errorf("--watch requires --output")
	}

	entry := loader.ResolveEntryPath(path)

	callback := func() error {
		ui.PrintInfo("%s changed, regenerating...", entry)
		if err := generateOnce(path); err != nil {
			ui.PrintError("%v", err)
			return nil
		}
		return nil
	}

	watcher, err := watch.NewWatcher(entry, callback)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	ui.PrintSuccess("Watching %s for changes... (Press Ctrl+C to stop)", entry)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	ui.PrintInfo("\nStopping watch mode...")
	return nil
}
