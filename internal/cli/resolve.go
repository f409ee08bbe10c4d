// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexthash/revspec/plumbing"
	"github.com/nexthash/revspec/revision"
)

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <rev>...",
		Short: "Resolve one or more revision expressions to object ids",
		Long: `resolve evaluates each argument as a revision expression (the same
grammar as "git rev-parse"): abbreviated object ids, ref DWIM, history
navigation ("~", "^"), peeling ("^{tree}"), reflog lookups ("@{2}",
"@{upstream}"), commit-message search ("^{/fix}"), and tree-path descent
(":path/to/file"). Each argument is printed on its own line as a 40
character hex object id, or its first n characters with --short=n.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verify, _ := cmd.Flags().GetBool("verify")
			short, _ := cmd.Flags().GetInt("short")
			return runResolve(cmd, args, verify, short)
		},
	}

	cmd.Flags().Bool("verify", false, "Fail if the argument doesn't resolve to exactly one object")
	cmd.Flags().Int("short", 0, "Abbreviate the printed object id to n hex characters")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string, verify bool, short int) error {
	repo, err := openRepository(flagCWD, flagCache)
	if err != nil {
		return err
	}

	p := newPainter(colorEnabled(flagNoColor))
	t := newTracer(flagVerbose)
	ctx := context.Background()

	var failed error
	for _, spec := range args {
		id, err := revision.Resolve(ctx, repo, spec)
		t.step("resolved %q", spec)
		if err != nil {
			if verify {
				return err
			}
			fmt.Fprintln(os.Stderr, renderError(err))
			failed = err
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), p.hash(formatHash(id, short)))
	}
	return failed
}

func formatHash(id plumbing.Hash, short int) string {
	s := id.String()
	if short > 0 && short < len(s) {
		return s[:short]
	}
	return s
}
