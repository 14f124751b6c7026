package main

import (
	"github.com/spf13/cobra"
)

// definitionCmd fetches one definition from the platform
func definitionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "definition <entityType> <hash>",
		Short:   "Show a single manifest definition",
		Example: "  destinyctl definition DestinyActivityDefinition 2693136600",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := parseHash(args[1])
			if err != nil {
				return err
			}
			env, err := client.GetRawEntityDefinition(cmd.Context(), args[0], hash)
			if err != nil {
				return err
			}
			return printEnvelope(cmd.OutOrStdout(), env)
		},
	}
}
