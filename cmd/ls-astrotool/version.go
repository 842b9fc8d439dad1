package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astrotool/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ls-astrotool %s\n", version.String())
		},
	}
}
