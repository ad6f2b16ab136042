// main is the entry point for the archeologist CLI.
package main

import (
	"fmt"
	"os"

	"github.com/relicworks/archeologist/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
