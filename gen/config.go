package gen

import (
	"sort"
	"strings"

	"github.com/structconf/structconf/schema"
)

// ConfigTree emits the compiled types and operations for a whole config
// tree: for every node a snapshot and compact type, freeze/compact
// conversions, restart detection over the node's subtree, and projection
// methods onto every descendant.
func (f *File) ConfigTree(root *schema.Config) {
	f.configNode(root)
}

func (f *File) configNode(node *schema.Config) {
	f.snapshotStruct(node)
	f.compactStruct(node)
	f.freezeFunc(node)
	f.compactFunc(node)
	f.restartFunc(node)
	f.shareFuncs(node)

	for i := range node.Fields {
		if nested := node.Fields[i].Schema; nested != nil {
			f.configNode(nested)
		}
	}
}

func (f *File) snapshotStruct(node *schema.Config) {
	f.printf("// %s is an immutable configuration snapshot. Instances are shared by\n", node.Name)
	f.printf("// pointer and must never be mutated after construction.\n")
	f.printf("type %s struct {\n", node.Name)

	for i := range node.Fields {
		field := &node.Fields[i]

		if field.Leaf() {
			f.printf("\t%s %s%s\n", exportName(field.Name), field.Type, tagLiteral(field.Tags))
		} else {
			f.printf("\t%s *%s%s\n", exportName(field.Name), field.Schema.Name, tagLiteral(field.Tags))
		}
	}

	f.printf("}\n\n")
}

func (f *File) compactStruct(node *schema.Config) {
	f.printf("// %sCompact is a fully owned, mutable mirror of %s, used to build\n", node.Name, node.Name)
	f.printf("// or edit a value before freezing it into a snapshot.\n")
	f.printf("type %sCompact struct {\n", node.Name)

	for i := range node.Fields {
		field := &node.Fields[i]

		if field.Leaf() {
			f.printf("\t%s %s\n", exportName(field.Name), field.Type)
		} else {
			f.printf("\t%s %sCompact\n", exportName(field.Name), field.Schema.Name)
		}
	}

	f.printf("}\n\n")
}

func (f *File) freezeFunc(node *schema.Config) {
	f.printf("// Freeze converts the compact value into an immutable snapshot, wrapping\n")
	f.printf("// nested nodes into shared pointers.\n")
	f.printf("func (c %sCompact) Freeze() *%s {\n", node.Name, node.Name)
	f.printf("\treturn &%s{\n", node.Name)

	for i := range node.Fields {
		field := &node.Fields[i]
		name := exportName(field.Name)

		if field.Leaf() {
			f.printf("\t\t%s: c.%s,\n", name, name)
		} else {
			f.printf("\t\t%s: c.%s.Freeze(),\n", name, name)
		}
	}

	f.printf("\t}\n}\n\n")
}

func (f *File) compactFunc(node *schema.Config) {
	f.printf("// Compact deep-copies the snapshot into a fully owned mutable value.\n")
	f.printf("func (s *%s) Compact() %sCompact {\n", node.Name, node.Name)
	f.printf("\treturn %sCompact{\n", node.Name)

	for i := range node.Fields {
		field := &node.Fields[i]
		name := exportName(field.Name)

		if field.Leaf() {
			f.printf("\t\t%s: s.%s,\n", name, name)
		} else {
			f.printf("\t\t%s: s.%s.Compact(),\n", name, name)
		}
	}

	f.printf("\t}\n}\n\n")
}

func (f *File) restartFunc(node *schema.Config) {
	var paths []string

	restartPaths(node, false, "", &paths)

	f.printf("// RestartRequired reports whether any restart-tagged field in the subtree\n")
	f.printf("// differs between the two snapshots. Untagged fields never participate.\n")
	f.printf("func (s *%s) RestartRequired(other *%s) bool {\n", node.Name, node.Name)

	if len(paths) == 0 {
		f.printf("\treturn false\n}\n\n")

		return
	}

	comparisons := make([]string, len(paths))
	for i, path := range paths {
		comparisons[i] = "s." + path + " != other." + path
	}

	f.printf("\treturn %s\n}\n\n", strings.Join(comparisons, " ||\n\t\t"))
}

// restartPaths collects the selector path of every transitively tagged leaf
// under node. A node-level tag covers every direct field; a tag on a nested
// field covers its whole subtree.
func restartPaths(node *schema.Config, force bool, prefix string, out *[]string) {
	for i := range node.Fields {
		field := &node.Fields[i]
		tagged := force || node.Restart || field.Restart
		selector := prefix + exportName(field.Name)

		if field.Leaf() {
			if tagged {
				*out = append(*out, selector)
			}
		} else {
			restartPaths(field.Schema, tagged, selector+".", out)
		}
	}
}

func (f *File) shareFuncs(node *schema.Config) {
	for _, d := range descendants(node, "") {
		f.printf("// Share%s returns the shared %s snapshot held by this snapshot's\n", d.node.Name, d.node.Name)
		f.printf("// subtree. No data is copied; the returned pointer may outlive the parent.\n")
		f.printf("func (s *%s) Share%s() *%s {\n", node.Name, d.node.Name, d.node.Name)
		f.printf("\treturn s.%s\n}\n\n", d.path)
	}
}

type descendant struct {
	node *schema.Config
	path string
}

// descendants lists every node strictly below the given one, in declaration
// order, with the selector path that reaches it.
func descendants(node *schema.Config, prefix string) []descendant {
	var out []descendant

	for i := range node.Fields {
		field := &node.Fields[i]
		if field.Schema == nil {
			continue
		}

		path := prefix + exportName(field.Name)
		out = append(out, descendant{node: field.Schema, path: path})
		out = append(out, descendants(field.Schema, path+".")...)
	}

	return out
}

// tagLiteral renders passthrough annotations as a struct tag. Keys are
// sorted so output is deterministic.
func tagLiteral(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}

	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, key := range keys {
		pairs[i] = key + `:"` + tags[key] + `"`
	}

	return " `" + strings.Join(pairs, " ") + "`"
}
