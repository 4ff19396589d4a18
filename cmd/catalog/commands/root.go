// Package commands implements the catalog command line.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// Runner performs one catalog update.
type Runner interface {
	Run(ctx context.Context, configPath string, force []string) error
}

type CLI struct {
	runner     Runner
	rootCmd    *cobra.Command
	configPath string
}

func New(r Runner) *CLI {
	rootCmd := &cobra.Command{
		Use:           "catalog",
		Short:         "Refresh the catalog page from the product spreadsheet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c := &CLI{runner: r, rootCmd: rootCmd}
	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Config file (default: ./catalog.yaml when present)")
	rootCmd.AddCommand(c.newRunCmd())
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
