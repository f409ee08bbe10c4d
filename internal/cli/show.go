// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nexthash/revspec/object"
	"github.com/nexthash/revspec/revision"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <rev>",
		Short: "Show the object a revision expression resolves to",
		Long: `show resolves its argument exactly like "resolve", then prints the
contents of whatever object it names: commit metadata and message, a tree
listing, blob size and content, or tag metadata, depending on which kind
of object the expression resolves to.`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	repo, err := openRepository(flagCWD, flagCache)
	if err != nil {
		return err
	}

	p := newPainter(colorEnabled(flagNoColor))
	t := newTracer(flagVerbose)
	ctx := context.Background()

	result, err := revision.ResolveExt(ctx, repo, args[0])
	if err != nil {
		return err
	}
	t.step("resolved %q to %s", args[0], result.ID)

	obj, kind, err := object.AnyObject(ctx, repo, result.ID)
	if err != nil {
		return err
	}
	t.step("decoded %s object", kind)

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s %s\n", p.kind(kind.String()), p.hash(result.ID.String()))
	switch v := obj.(type) {
	case *object.Commit:
		return showCommit(w, v)
	case *object.Tree:
		return showTree(w, v)
	case *object.Blob:
		return showBlob(w, v)
	case *object.Tag:
		return showTag(w, v)
	default:
		return fmt.Errorf("revspec: unrecognized object kind %s", kind)
	}
}

func showCommit(w io.Writer, c *object.Commit) error {
	fmt.Fprintf(w, "tree %s\n", c.Tree.String())
	for _, parent := range c.Parents {
		fmt.Fprintf(w, "parent %s\n", parent.String())
	}
	fmt.Fprintf(w, "author %s\n", formatSignature(c.Author))
	fmt.Fprintf(w, "committer %s\n", formatSignature(c.Committer))
	fmt.Fprintln(w)
	fmt.Fprint(w, c.Message)
	return nil
}

func showTree(w io.Writer, t *object.Tree) error {
	for _, e := range t.Entries {
		kind := "blob"
		if e.IsDir() {
			kind = "tree"
		}
		fmt.Fprintf(w, "%06o %s %s\t%s\n", uint32(e.Mode), kind, e.Hash.String(), e.Name)
	}
	return nil
}

func showBlob(w io.Writer, b *object.Blob) error {
	fmt.Fprintf(w, "size: %s\n\n", humanize.Bytes(uint64(b.Size)))
	_, err := w.Write(b.Data)
	return err
}

func showTag(w io.Writer, tg *object.Tag) error {
	fmt.Fprintf(w, "object %s\n", tg.Object.String())
	fmt.Fprintf(w, "type %s\n", tg.ObjectKind.String())
	fmt.Fprintf(w, "tag %s\n", tg.Name)
	fmt.Fprintf(w, "tagger %s\n", formatSignature(tg.Tagger))
	fmt.Fprintln(w)
	fmt.Fprint(w, tg.Message)
	return nil
}

func formatSignature(s object.Signature) string {
	return fmt.Sprintf("%s <%s> %s (%s)", s.Name, s.Email, s.When.Format(time.RFC3339), humanize.Time(s.When))
}
