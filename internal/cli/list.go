package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tacogips/kickstart/internal/catalog"
	"github.com/tacogips/kickstart/internal/render"
)

// listEntry is the JSON form of a catalog node.
type listEntry struct {
	Name     string      `json:"name"`
	Dir      string      `json:"dir,omitempty"`
	Variants []listEntry `json:"variants,omitempty"`
}

// printCatalog writes the catalog tree to stdout. Each selectable template
// shows the value accepted by --template.
func printCatalog(cat *catalog.Catalog, asJSON bool) error {
	frameworks := cat.Frameworks()

	if asJSON {
		entries := make([]listEntry, 0, len(frameworks))
		for _, f := range frameworks {
			switch n := f.(type) {
			case catalog.Leaf:
				entries = append(entries, listEntry{Name: n.Name, Dir: n.Dir})
			case catalog.Group:
				e := listEntry{Name: n.Name}
				for _, v := range n.Variants {
					e.Variants = append(e.Variants, listEntry{Name: v.Name, Dir: v.Dir})
				}
				entries = append(entries, e)
			}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal catalog: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
		return nil
	}

	for _, f := range frameworks {
		title := palette.Label(f.NodeName(), f.NodeColor())
		switch n := f.(type) {
		case catalog.Leaf:
			fmt.Fprintf(stdout, "%s %s\n", title, palette.Muted("--template "+n.Dir))
		case catalog.Group:
			fmt.Fprintln(stdout, title)
			width := 0
			for _, v := range n.Variants {
				if w := render.Width(v.Name); w > width {
					width = w
				}
			}
			for _, v := range n.Variants {
				label := render.PadRight(palette.Label(v.Name, v.Color), width)
				fmt.Fprintf(stdout, "  %s  %s\n", label, palette.Muted("--template "+quoteArg(v.Name)))
			}
		}
	}
	return nil
}

// quoteArg single-quotes names a shell would split or expand. Embedded
// single quotes are written as '\''.
func quoteArg(s string) string {
	if !strings.ContainsAny(s, " ()'\"$&|;*?<>`\\") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
