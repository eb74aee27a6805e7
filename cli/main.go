package main

import (
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"github.com/dbschema-go/dbschema/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
