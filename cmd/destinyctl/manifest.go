package main

import (
	"fmt"

	"github.com/lieuweberg/bungie-go"
	"github.com/spf13/cobra"
)

// manifestCmd prints the current manifest
func manifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Show the current manifest",
		Long: `Show the current manifest. When --locale is given only the version and the
content paths for that locale are printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := client.GetManifest(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("locale") || !env.IsSuccess() {
				return printEnvelope(cmd.OutOrStdout(), env)
			}

			out := cmd.OutOrStdout()
			m := env.Response
			fmt.Fprintf(out, "Version:        %s\n", m.Version)
			path, ok := m.WorldContentPath(locale)
			if !ok {
				return fmt.Errorf("manifest has no world database for locale %q, available: %v", locale, m.Locales())
			}
			fmt.Fprintf(out, "World database: %s%s\n", client.Config().RootURL, path)
			for _, entityType := range []string{bungie.EntityActivity, bungie.EntityInventoryItem} {
				if p, ok := m.ComponentPath(locale, entityType); ok {
					fmt.Fprintf(out, "%s: %s%s\n", entityType, client.Config().RootURL, p)
				}
			}
			return nil
		},
	}
}
