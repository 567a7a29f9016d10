// Applywizard is a terminal job application wizard.
//
// It walks an applicant through personal details, professional information
// and additional details, then shows a preview before submitting. Experience
// levels and preferred departments are picked from remote lists that load
// page by page as the applicant scrolls.
//
// Usage:
//
//	applywizard [command] [flags]
//
// Running without arguments launches the interactive wizard.
// See 'applywizard --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/talentdesk/applywizard/internal/logging"
	"github.com/talentdesk/applywizard/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "applywizard",
	Short: "Job application wizard",
	Long: `A terminal wizard for filling in a job application.

Three steps collect personal details, professional information and
additional details. Experience levels come from the product catalog and
preferred departments from the user directory, both loaded page by page.
A preview lets you review, edit or start over before submitting.

If no command is specified, the interactive wizard will launch automatically.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runWizard,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "applywizard %s\n", version.Full())
	},
}
