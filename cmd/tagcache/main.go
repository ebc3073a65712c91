// Command tagcache administers a tagcache memcached store: resetting tags,
// deleting keys and flushing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
	prefix     string
	verbose    bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tagcache",
		Short:         "Administer a tagcache store",
		Long:          "Reset tags, delete keys and flush a tagcache memcached store described by a YAML config",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file")
	cmd.PersistentFlags().StringVar(&prefix, "prefix", "", "Key prefix (overrides config)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log cache debug output")

	cmd.AddCommand(
		resetTagsCmd(),
		deleteCmd(),
		flushCmd(),
		pingCmd(),
	)
	return cmd
}
