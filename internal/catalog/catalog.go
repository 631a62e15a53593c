// Package catalog describes the templates kickstart can materialize.
//
// The catalog is a two-level tree: top-level frameworks are either a Leaf
// (a template on its own) or a Group whose variants are leaves. It is
// decoded once and never mutated.
package catalog

import (
	_ "embed"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtinYAML []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Catalog is an immutable, ordered template tree.
type Catalog struct {
	frameworks []Node
}

// Default returns the built-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(builtinYAML)
		if err != nil {
			panic("catalog: built-in catalog is invalid: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load reads a catalog document from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newCatalogError("", "failed to read "+path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var raw []rawNode
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, newCatalogError("", "invalid YAML", err)
	}
	if len(raw) == 0 {
		return nil, newCatalogError("", "catalog has no entries", nil)
	}

	seen := make(map[string]bool, len(raw))
	frameworks := make([]Node, 0, len(raw))
	for _, r := range raw {
		if r.Name == "" {
			return nil, newCatalogError("", "framework name is required", nil)
		}
		if seen[r.Name] {
			return nil, newCatalogError(r.Name, "duplicate framework name", nil)
		}
		seen[r.Name] = true

		node, err := convert(r)
		if err != nil {
			return nil, err
		}
		frameworks = append(frameworks, node)
	}

	return &Catalog{frameworks: frameworks}, nil
}

func convert(r rawNode) (Node, error) {
	switch {
	case r.Dir != "" && len(r.Variants) > 0:
		return nil, newCatalogError(r.Name, "node has both dir and variants", nil)
	case r.Dir != "":
		return Leaf{Name: r.Name, Color: r.Color, Dir: r.Dir}, nil
	case len(r.Variants) == 0:
		return nil, newCatalogError(r.Name, "node needs a dir or at least one variant", nil)
	}

	g := Group{Name: r.Name, Color: r.Color, Variants: make([]Leaf, 0, len(r.Variants))}
	seen := make(map[string]bool, len(r.Variants))
	for _, v := range r.Variants {
		path := r.Name + "/" + v.Name
		if v.Name == "" {
			return nil, newCatalogError(r.Name, "variant name is required", nil)
		}
		if seen[v.Name] {
			return nil, newCatalogError(path, "duplicate variant name", nil)
		}
		seen[v.Name] = true
		if len(v.Variants) > 0 {
			return nil, newCatalogError(path, "variants cannot be nested", nil)
		}
		if v.Dir == "" {
			return nil, newCatalogError(path, "variant dir is required", nil)
		}
		g.Variants = append(g.Variants, Leaf{Name: v.Name, Color: v.Color, Dir: v.Dir})
	}
	return g, nil
}

// Frameworks returns the top-level entries in catalog order.
func (c *Catalog) Frameworks() []Node {
	out := make([]Node, len(c.frameworks))
	copy(out, c.frameworks)
	return out
}

// Variants returns the variants of the named framework, or nil when the
// framework is unknown or is a leaf.
func (c *Catalog) Variants(framework string) []Leaf {
	for _, n := range c.frameworks {
		if g, ok := n.(Group); ok && g.Name == framework {
			out := make([]Leaf, len(g.Variants))
			copy(out, g.Variants)
			return out
		}
	}
	return nil
}

// LeafNames returns every name accepted by Lookup, in catalog order.
// Variants are listed by display name; a top-level leaf is listed by its
// directory.
func (c *Catalog) LeafNames() []string {
	var names []string
	for _, e := range c.selectable() {
		names = append(names, e.key)
	}
	return names
}

// Lookup finds the leaf selected by an exact, case-sensitive name. It
// reports false for unknown and ambiguous names.
func (c *Catalog) Lookup(name string) (Leaf, bool) {
	var (
		found Leaf
		hits  int
	)
	for _, e := range c.selectable() {
		if e.key == name {
			found = e.leaf
			hits++
		}
	}
	if hits != 1 {
		return Leaf{}, false
	}
	return found, true
}

type selectableLeaf struct {
	key  string
	leaf Leaf
}

func (c *Catalog) selectable() []selectableLeaf {
	var out []selectableLeaf
	for _, n := range c.frameworks {
		switch n := n.(type) {
		case Leaf:
			out = append(out, selectableLeaf{key: n.Dir, leaf: n})
		case Group:
			for _, v := range n.Variants {
				out = append(out, selectableLeaf{key: v.Name, leaf: v})
			}
		}
	}
	return out
}
