package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func resetTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-tags <tag>...",
		Short: "Invalidate every entry holding one of the tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, done, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			stamps := cc.ResetTags(cmd.Context(), args...)
			if cc.Degraded() {
				return fmt.Errorf("store too slow, tags were not reset")
			}
			tags := make([]string, 0, len(stamps))
			for t := range stamps {
				tags = append(tags, t)
			}
			sort.Strings(tags)
			for _, t := range tags {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", t, stamps[t])
			}
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>...",
		Short: "Delete entries by logical key",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, done, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			for _, k := range args {
				status := "missing"
				if cc.Delete(cmd.Context(), k) {
					status = "deleted"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, status)
			}
			return nil
		},
	}
}

func flushCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "flush",
		Short: "Drop everything in the store (all prefixes)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("flush drops every key on the server; pass --yes to confirm")
			}
			cc, done, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			if !cc.Flush(cmd.Context()) {
				return fmt.Errorf("flush failed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "flushed")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the flush")
	return cmd
}

func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the store is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, done, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			if !cc.Enabled() {
				fmt.Fprintln(cmd.OutOrStdout(), "disabled")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
