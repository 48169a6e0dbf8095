package ptrie

import (
	"fmt"
	"sort"
)

// Trie is one immutable version of the container, identified by its
// root node. The zero Trie is an empty snapshot. A Trie is a small
// value meant to be passed around by value; no operation modifies the
// receiver.
type Trie struct {
	root *node
	size uint64
}

// node represents one position in a key's byte sequence. A node is
// never modified after it is linked into a returned snapshot; it may be
// referenced by any number of snapshots and parents at once. Except for
// the root of an empty trie (which is simply absent), a node always has
// at least one child or a value; delete prunes anything else.
type node struct {
	value    *Value
	children map[byte]*node
}

// xcopy returns a node whose children map is a fresh copy but whose
// subtrees and value are the originals, shared.
func (n *node) xcopy() *node {
	newNode := node{value: n.value}
	if len(n.children) > 0 {
		newNode.children = make(map[byte]*node, len(n.children))
		for c, child := range n.children {
			newNode.children[c] = child
		}
	}
	return &newNode
}

// newPath builds the chain of fresh nodes spelling the remainder of a
// key that had nothing to copy, with the value at the end.
func newPath(key string, value *Value) *node {
	n := &node{value: value}
	for i := len(key) - 1; i >= 0; i-- {
		n = &node{children: map[byte]*node{key[i]: n}}
	}
	return n
}

// pathEntry records an ancestor visited on the way to a key and the
// edge that descends toward the next one.
type pathEntry struct {
	node *node
	c    byte
}

func (n *node) countEntries() uint64 {
	var count uint64
	if n.value != nil {
		count++
	}
	for _, child := range n.children {
		count += child.countEntries()
	}
	return count
}

// edges returns the node's child edges in ascending byte order, so
// debug output and diff callbacks are deterministic.
func (n *node) edges() []byte {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	out := make([]byte, 0, len(n.children))
	for c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (n *node) string(indent string) string {
	res := ""
	if n.value != nil {
		res += fmt.Sprintf("%s= %v\n", indent, *n.value)
	}
	for _, c := range n.edges() {
		res += fmt.Sprintf("%s%q {\n", indent, c)
		res += n.children[c].string(indent + "   ")
		res += indent + "}\n"
	}
	return res
}

func (t Trie) dump() {
	if t.root == nil {
		fmt.Printf("NIL\n")
		return
	}
	fmt.Printf("{\n%s}\n", t.root.string("   "))
}
