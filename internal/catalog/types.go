package catalog

// Node is an entry of the catalog: either a Leaf or a Group.
type Node interface {
	// NodeName returns the display key of the node.
	NodeName() string
	// NodeColor returns the presentation color name (may be empty).
	NodeColor() string

	isNode()
}

// Leaf is a selectable template.
type Leaf struct {
	// Name is the display key, unique among siblings.
	Name string
	// Color is a presentation hint understood by the render package.
	Color string
	// Dir identifies the on-disk template, stored as template-<Dir>.
	Dir string
}

// Group is a framework offering an ordered list of variants.
type Group struct {
	Name     string
	Color    string
	Variants []Leaf
}

func (l Leaf) NodeName() string  { return l.Name }
func (l Leaf) NodeColor() string { return l.Color }
func (Leaf) isNode()             {}

func (g Group) NodeName() string  { return g.Name }
func (g Group) NodeColor() string { return g.Color }
func (Group) isNode()             {}

// TemplateDirName returns the directory name of the template beneath the
// templates root.
func (l Leaf) TemplateDirName() string {
	return TemplateDirPrefix + l.Dir
}

// TemplateDirPrefix is prepended to Leaf.Dir to form the template directory.
const TemplateDirPrefix = "template-"

// rawNode is the YAML form of a node.
type rawNode struct {
	Name     string    `yaml:"name"`
	Color    string    `yaml:"color,omitempty"`
	Dir      string    `yaml:"dir,omitempty"`
	Variants []rawNode `yaml:"variants,omitempty"`
}
