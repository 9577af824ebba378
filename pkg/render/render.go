// Package render prints project trees, route tables and scenario results for
// the terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ddddddO/gtree"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mattsolo1/grove-routes/pkg/scenario"
	"github.com/mattsolo1/grove-routes/pkg/search"
	"github.com/mattsolo1/grove-routes/pkg/tree"
)

var title = cases.Title(language.English)

// Options controls tree output.
type Options struct {
	ShowIDs bool
}

// Tree prints every root as its own gtree block.
func Tree(w io.Writer, roots []*tree.Node, opts Options) error {
	for _, r := range roots {
		root := gtree.NewRoot(Label(r, opts))
		addChildren(root, r.Children, opts)
		if err := gtree.OutputProgrammably(w, root); err != nil {
			return fmt.Errorf("render %s: %w", r.Name, err)
		}
	}
	return nil
}

func addChildren(parent *gtree.Node, children []*tree.Node, opts Options) {
	for _, c := range children {
		addChildren(parent.Add(Label(c, opts)), c.Children, opts)
	}
}

// Label formats one node, e.g. "[slug]  (directory/dynamic)  → /blog/:slug".
func Label(n *tree.Node, opts Options) string {
	var b strings.Builder
	b.WriteString(n.Name)
	if n.IsDir() {
		fmt.Fprintf(&b, "  (%s/%s)", n.Kind, n.RouteType)
	} else {
		fmt.Fprintf(&b, "  (%s)", n.Kind)
	}
	if n.Endpoint != nil {
		b.WriteString("  → ")
		b.WriteString(*n.Endpoint)
	}
	if opts.ShowIDs {
		fmt.Fprintf(&b, "  [%s]", n.ID)
	}
	return b.String()
}

// Table prints index entries as aligned columns.
func Table(w io.Writer, entries []*search.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ENDPOINT\tKIND\tTYPE\tPATH")
	fmt.Fprintln(tw, "--------\t----\t----\t----")

	for _, e := range entries {
		endpoint := e.Endpoint
		if !e.Routable {
			endpoint = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", endpoint, title.String(string(e.Kind)), e.RouteType, e.Path)
	}

	return tw.Flush()
}

// Results prints one line per scenario step.
func Results(w io.Writer, results []scenario.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "STEP\tACTION\tTARGET\tOUTCOME\tDETAIL")
	for _, r := range results {
		outcome := "ok"
		if !r.Allowed {
			outcome = "rejected"
		}
		detail := r.Message
		if detail == "" && r.Path != "" {
			detail = r.Path
			if r.Endpoint != "" {
				detail += " → " + r.Endpoint
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.Step, title.String(r.Action), r.Target, outcome, detail)
	}

	return tw.Flush()
}
