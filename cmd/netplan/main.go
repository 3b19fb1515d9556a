package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bengentil/netplan/pkg/cli"
	"github.com/bengentil/netplan/pkg/console"
	"github.com/bengentil/netplan/pkg/constants"
)

// Build-time variables set by GoReleaser
var (
	version = "dev"
)

// Global flags
var verbose bool

var rootCmd = &cobra.Command{
	Use:   constants.CLIName,
	Short: "Validate netplan network definitions",
	Long: `netplan reads YAML network definitions and reports problems with precise
source positions, so a broken file can be fixed before it is applied.

Pass a single file to validate it, or a directory to validate every YAML
file in it in the order the configuration would be merged.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a network definition file or configuration directory",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		watch, _ := cmd.Flags().GetBool("watch")
		path := constants.DefaultConfigDir
		if len(args) > 0 {
			path = args[0]
		}
		if err := runValidate(path, watch); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

func runValidate(path string, watch bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		if watch {
			return cli.WatchAndValidate(path, verbose)
		}
		return cli.ValidateAll(path, verbose)
	}
	if watch {
		return fmt.Errorf("--watch requires a configuration directory")
	}
	return cli.ValidateFile(path, verbose)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s version %s\n", constants.CLIName, version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	validateCmd.Flags().BoolP("watch", "w", false, "Watch the configuration directory and revalidate on changes")
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}
