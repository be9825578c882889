package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhabedank/referat/cmd"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:               "referat",
		Short:             "Generate structured essays from a topic with an LLM",
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: cmd.Prepare,
	}

	cmd.AddPersistentFlags(rootCmd)
	rootCmd.AddCommand(cmd.BatchCmd, cmd.GenerateCmd, cmd.SetupCmd, cmd.ProvidersCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
