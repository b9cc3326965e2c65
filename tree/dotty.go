package tree

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

type nodeids[K, V any] struct {
	idTable map[*node[K, V]]int
	max     int
}

func newtable[K, V any]() nodeids[K, V] {
	return nodeids[K, V]{
		idTable: make(map[*node[K, V]]int),
		max:     1,
	}
}

func (ids *nodeids[K, V]) alloc(n *node[K, V]) int {
	if id := ids.idTable[n]; id > 0 {
		return id
	}
	ids.idTable[n] = ids.max
	ids.max++
	return ids.max - 1
}

// ToDot outputs the internal structure of the tree in Graphviz DOT format
// (for debugging purposes).
func (t *Tree[K, V]) ToDot(w io.Writer) error {
	var b strings.Builder
	b.WriteString("strict digraph {\n")
	b.WriteString("\tnode [fontname=Arial,fontsize=12];\n")
	ids := newtable[K, V]()
	var nodelist, edgelist strings.Builder
	for n := range t.inOrder() {
		id := ids.alloc(n)
		fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", id, t.nodeLabel(n, `\n`), t.nodeDotStyles(n))
		if n.left == nil && n.right == nil {
			continue
		}
		for i, child := range []*node[K, V]{n.left, n.right} {
			if child == nil {
				nilid := -(2*id + i)
				fmt.Fprintf(&nodelist, "\"%d\" %s;\n", nilid, emptyNode)
				fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", id, nilid)
				continue
			}
			fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", id, ids.alloc(child))
		}
	}
	b.WriteString(nodelist.String())
	b.WriteString(edgelist.String())
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

const emptyNode = "[label=\"\",color=black,shape=circle,fixedsize=true,width=.2]"

func (t *Tree[K, V]) nodeDotStyles(n *node[K, V]) string {
	s := ",style=filled,shape=box"
	if t.cfg.Discipline == RedBlack {
		if isRed(n) {
			return s + ",color=black,fontcolor=white,fillcolor=\"#cc3333\""
		}
		return s + ",color=black,fontcolor=white,fillcolor=black"
	}
	return s + ",color=black,fillcolor=\"#a3d7e4\""
}

// nodeLabel describes a node by its key or lengths and its aggregates.
func (t *Tree[K, V]) nodeLabel(n *node[K, V], sep string) string {
	var parts []string
	switch a := t.cfg.Augmentation; {
	case a.keyed():
		parts = append(parts, fmt.Sprintf("%v", n.key))
	case a == Range:
		parts = append(parts, fmt.Sprintf("len=%d", n.agg.weight[X]))
	default:
		parts = append(parts, fmt.Sprintf("len=%d,%d", n.agg.weight[X], n.agg.weight[Y]))
	}
	switch t.cfg.Augmentation {
	case Rank:
		parts = append(parts, fmt.Sprintf("size=%d", n.agg.count))
	case MultiRank:
		parts = append(parts, fmt.Sprintf("×%d size=%d sum=%d", n.agg.weight[X], n.agg.count, n.agg.extent[X]))
	case Range:
		parts = append(parts, fmt.Sprintf("ext=%d", n.agg.extent[X]))
	case Range2:
		parts = append(parts, fmt.Sprintf("ext=%d,%d", n.agg.extent[X], n.agg.extent[Y]))
	}
	if t.cfg.Discipline == AVL {
		parts = append(parts, fmt.Sprintf("h=%d", n.meta))
	}
	return strings.Join(parts, sep)
}

// Dump writes an indented outline of the tree, right subtree first, so that
// the output reads as the tree rotated counter-clockwise. If w is a terminal,
// red nodes of red-black trees are printed red.
func (t *Tree[K, V]) Dump(w io.Writer) error {
	redNode, plain := dumpColors(w)
	var b strings.Builder
	fmt.Fprintf(&b, "%s tree, %d entries, version %d\n", t.cfg, t.count, t.version)
	var walk func(n *node[K, V], depth int)
	walk = func(n *node[K, V], depth int) {
		if n == nil {
			return
		}
		walk(n.right, depth+1)
		label := t.nodeLabel(n, " ")
		if t.cfg.Discipline == RedBlack && isRed(n) {
			label = redNode.Sprint(label)
		} else {
			label = plain.Sprint(label)
		}
		fmt.Fprintf(&b, "%s%s\n", strings.Repeat("    ", depth), label)
		walk(n.left, depth+1)
	}
	walk(t.root, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func dumpColors(w io.Writer) (redNode, plain *color.Color) {
	redNode, plain = color.New(color.FgRed, color.Bold), color.New(color.FgBlue)
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		redNode.EnableColor()
		plain.EnableColor()
	} else {
		redNode.DisableColor()
		plain.DisableColor()
	}
	return redNode, plain
}
