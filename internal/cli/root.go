// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package cli wires the revision resolver to a command line, grounded on
// ImGajeed76-pgit's internal/cli package layout (one file per subcommand,
// a shared root.go assembling them) and on the teacher's Globals /
// DbgPrint / die_error conventions (pkg/command/command.go,
// pkg/zeta/misc.go) for the shared flags and error rendering.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagCWD     string
	flagVerbose bool
	flagNoColor bool
	flagCache   bool
)

var rootCmd = &cobra.Command{
	Use:           "revspec",
	Short:         "Resolve git-style revision expressions against a loose-object repository",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute runs the command tree, reporting any error in the teacher's
// "error: <msg>" style before returning it to main for the exit code.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		return err
	}
	return nil
}

func renderError(err error) string {
	p := newPainter(colorEnabled(flagNoColor))
	return p.warn("error: ") + err.Error()
}

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	rootCmd.PersistentFlags().StringVar(&flagCWD, "cwd", "", "Path to the repository worktree (defaults to the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "V", false, "Make the operation more talkative")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagCache, "cache", false, "Enable the decode cache for repeated lookups")

	rootCmd.AddCommand(newResolveCmd(), newShowCmd(), newVersionCmd())
}
