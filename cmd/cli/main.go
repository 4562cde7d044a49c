package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/mtoivan/samplab/cmd/cli/layoutcmd"
	"github.com/mtoivan/samplab/cmd/cli/scenariocmd"
	"github.com/mtoivan/samplab/internal/errors"
	"github.com/spf13/cobra"
)

func init() {
	// Local development configuration. The file is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(scenariocmd.Group)
	rootCmd.AddCommand(scenariocmd.List)
	rootCmd.AddCommand(scenariocmd.Check)
	rootCmd.AddGroup(layoutcmd.Group)
	rootCmd.AddCommand(layoutcmd.Generate)
	rootCmd.AddCommand(layoutcmd.Score)
}

var rootCmd = &cobra.Command{
	Use:  "samplab",
	Long: `Operator utilities for the Samplab sampling-point sandbox`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
