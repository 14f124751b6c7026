package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/lieuweberg/bungie-go/worldcontent"
	"github.com/spf13/cobra"
)

// worlddbCmd groups the world database commands
func worlddbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worlddb",
		Short: "Download and query the sqlite world database",
	}
	cmd.AddCommand(worlddbDownloadCmd(), worlddbLookupCmd())
	return cmd
}

func worlddbDownloadCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the world database of the current manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := client.GetManifest(cmd.Context())
			if err != nil {
				return err
			}
			if !env.IsSuccess() {
				return printEnvelope(cmd.OutOrStdout(), env)
			}

			path, err := worldcontent.Download(cmd.Context(), client, &env.Response, locale, dir)
			if err != nil {
				return err
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, manifest %s)\n", path, humanize.Bytes(uint64(info.Size())), env.Response.Version)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory to unzip the database into")

	return cmd
}

func worlddbLookupCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:     "lookup <entityType> <hash>",
		Short:   "Show a definition from a downloaded world database",
		Example: "  destinyctl worlddb lookup --db world_sql_content.content DestinyPlaceDefinition 2961497387",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := parseHash(args[1])
			if err != nil {
				return err
			}

			db, err := worldcontent.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			raw, err := db.LookupRaw(cmd.Context(), args[0], hash)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	}

	// works offline, without an api key
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error { return nil }
	cmd.Flags().StringVar(&dbPath, "db", "", "path of the world database")
	cmd.MarkFlagRequired("db")

	return cmd
}
