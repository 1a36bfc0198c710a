package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the metadata cache directory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <address>",
		Short: "Store the --metadata document as the metadata of a contract address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Metadata == "" {
				return fmt.Errorf("cache add requires --metadata")
			}
			p, err := a.project(cmd.Context())
			if err != nil {
				return err
			}
			if err := p.Validate(); err != nil {
				return err
			}
			if err := a.loader.SaveToCache(args[0], p); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "cached %s for %s in %s\n", p.ContractName(), args[0], a.loader.CacheDir())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(out(cmd), a.loader.CacheDir())
		},
	})

	return cmd
}
