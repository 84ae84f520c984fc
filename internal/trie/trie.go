package trie

import (
	"bytes"
	"slices"
)

// Trie is a compressed prefix tree mapping byte-string keys to small integer
// ids. It is built once by a batch of Insert calls and then handed to the
// code generator, which lowers it into a decision tree of length checks and
// byte comparisons. It is not safe for concurrent use and supports no
// deletion.
type Trie struct {
	root Node
}

// Node is one of the five node shapes: *Run, *Fanout, *Inline, *Leaf, or nil
// for the empty trie. Children are exclusively owned; no node is ever
// referenced from two places.
type Node interface {
	// MinSize returns the total length of the shortest complete key
	// reachable beneath this node, in constant time.
	MinSize() int
}

// Run is a forced shared literal byte sequence: every key passing through
// this node continues with Prefix. Prefix is never empty; an ambiguous next
// byte forces a Fanout instead.
type Run struct {
	Prefix []byte
	Min    int
	Next   Node
}

// Fanout is a multi-way branch on the next distinguishing byte. Items is
// kept sorted ascending by byte so that iteration order, and therefore the
// generated switch, is deterministic.
type Fanout struct {
	Min   int
	Items []FanoutItem
}

// FanoutItem is one branch of a Fanout. No two items of the same Fanout
// share a byte.
type FanoutItem struct {
	Byte byte
	Node Node
}

// Inline marks a key that ends exactly at this point while strictly longer
// keys continue in Next. TotalPrefix is the full key ending here.
type Inline struct {
	TotalPrefix []byte
	Value       int
	Next        Node
}

// Leaf marks exactly one remaining key. Suffix is what is still needed to
// disambiguate it at this position (possibly empty); TotalPrefix is the full
// key.
type Leaf struct {
	Suffix      []byte
	TotalPrefix []byte
	Value       int
}

func (r *Run) MinSize() int    { return r.Min }
func (f *Fanout) MinSize() int { return f.Min }
func (i *Inline) MinSize() int { return len(i.TotalPrefix) }
func (l *Leaf) MinSize() int   { return len(l.TotalPrefix) }

// New returns an empty trie.
func New() *Trie {
	return &Trie{}
}

// Root returns the root node, nil for an empty trie.
func (t *Trie) Root() Node {
	return t.root
}

// MinSize returns the length of the shortest inserted key, or 0 if the trie
// is empty.
func (t *Trie) MinSize() int {
	if t.root == nil {
		return 0
	}
	return t.root.MinSize()
}

// Insert adds key with the given value. Inserting a key that is already
// present overwrites its value without changing the trie shape. Insert is
// total: it accepts any byte string, including the empty one.
func (t *Trie) Insert(key []byte, value int) {
	t.root = insert(t.root, key, key, value)
}

// Lookup walks the trie directly and returns the value stored for key.
func (t *Trie) Lookup(key []byte) (int, bool) {
	return lookup(t.root, key)
}

// prefixRel describes how a node's stored byte sequence relates to the
// remaining key being inserted.
type prefixRel int

const (
	relDiverge     prefixRel = iota // differ at the returned offset
	relLeftInRight                  // left is a strict prefix of right
	relRightInLeft                  // right is a strict prefix of left
	relEqual
)

// matchPrefix scans left and right for the first differing byte. For
// relDiverge the returned offset is the index of that byte; for the other
// relations it is meaningless.
func matchPrefix(left, right []byte) (prefixRel, int) {
	n := min(len(left), len(right))
	for i := 0; i < n; i++ {
		if left[i] != right[i] {
			return relDiverge, i
		}
	}
	switch {
	case len(left) > len(right):
		return relRightInLeft, 0
	case len(left) < len(right):
		return relLeftInRight, 0
	default:
		return relEqual, 0
	}
}

// insert merges key into the subtree rooted at n and returns the replacement
// subtree. key is the suffix of total relevant at this position; total is
// the complete key, kept around because min sizes and Inline/Leaf nodes are
// expressed in total key lengths.
func insert(n Node, key, total []byte, value int) Node {
	switch n := n.(type) {
	case nil:
		// First key below this point.
		return &Leaf{Suffix: key, TotalPrefix: total, Value: value}

	case *Run:
		return insertRun(n, key, total, value)

	case *Fanout:
		if len(key) == 0 {
			// A key ends right at this branch point.
			return &Inline{TotalPrefix: total, Value: value, Next: n}
		}
		n.Min = min(n.Min, len(total))
		idx, ok := n.find(key[0])
		if ok {
			n.Items[idx].Node = insert(n.Items[idx].Node, key[1:], total, value)
		} else {
			n.Items = slices.Insert(n.Items, idx, FanoutItem{
				Byte: key[0],
				Node: &Leaf{Suffix: key[1:], TotalPrefix: total, Value: value},
			})
		}
		return n

	case *Inline:
		if len(key) == 0 {
			n.Value = value
			return n
		}
		// The continuation sees the full remaining key: an Inline consumes
		// no bytes.
		n.Next = insert(n.Next, key, total, value)
		return n

	case *Leaf:
		return insertLeaf(n, key, total, value)
	}
	panic("trie: unknown node kind")
}

func insertRun(n *Run, key, total []byte, value int) Node {
	rel, i := matchPrefix(n.Prefix, key)
	switch rel {
	case relDiverge:
		// The old subtree keeps its min: every key below it passes through
		// this run, so n.Min is exactly their minimum.
		var old Node
		if len(n.Prefix) > i+1 {
			old = &Run{Prefix: n.Prefix[i+1:], Min: n.Min, Next: n.Next}
		} else {
			old = n.Next
		}
		m := min(n.Min, len(total))
		fan := &Fanout{Min: m, Items: fanoutPair(
			n.Prefix[i], old,
			key[i], &Leaf{Suffix: key[i+1:], TotalPrefix: total, Value: value},
		)}
		if i == 0 {
			return fan
		}
		return &Run{Prefix: n.Prefix[:i], Min: m, Next: fan}

	case relLeftInRight:
		// key continues past the prefix: descend.
		n.Min = min(n.Min, len(total))
		n.Next = insert(n.Next, key[len(n.Prefix):], total, value)
		return n

	case relRightInLeft:
		if len(key) == 0 {
			// The new key ends exactly here.
			return &Inline{TotalPrefix: total, Value: value, Next: n}
		}
		// The new key ends inside the run: split it around an Inline.
		return &Run{
			Prefix: n.Prefix[:len(key)],
			Min:    min(n.Min, len(total)),
			Next: &Inline{
				TotalPrefix: total,
				Value:       value,
				Next:        &Run{Prefix: n.Prefix[len(key):], Min: n.Min, Next: n.Next},
			},
		}

	default: // relEqual
		if inl, ok := n.Next.(*Inline); ok {
			// Some key already ends here: overwrite its value.
			inl.Value = value
			return n
		}
		n.Min = min(n.Min, len(total))
		n.Next = &Inline{TotalPrefix: total, Value: value, Next: n.Next}
		return n
	}
}

func insertLeaf(n *Leaf, key, total []byte, value int) Node {
	rel, i := matchPrefix(n.Suffix, key)
	m := min(len(n.TotalPrefix), len(total))
	switch rel {
	case relDiverge:
		fan := &Fanout{Min: m, Items: fanoutPair(
			n.Suffix[i], &Leaf{Suffix: n.Suffix[i+1:], TotalPrefix: n.TotalPrefix, Value: n.Value},
			key[i], &Leaf{Suffix: key[i+1:], TotalPrefix: total, Value: value},
		)}
		if i == 0 {
			return fan
		}
		return &Run{Prefix: n.Suffix[:i], Min: m, Next: fan}

	case relLeftInRight:
		rest := &Leaf{Suffix: key[len(n.Suffix):], TotalPrefix: total, Value: value}
		old := &Inline{TotalPrefix: n.TotalPrefix, Value: n.Value, Next: rest}
		if len(n.Suffix) == 0 {
			return old
		}
		return &Run{Prefix: n.Suffix, Min: m, Next: old}

	case relRightInLeft:
		rest := &Leaf{Suffix: n.Suffix[len(key):], TotalPrefix: n.TotalPrefix, Value: n.Value}
		ins := &Inline{TotalPrefix: total, Value: value, Next: rest}
		if len(key) == 0 {
			return ins
		}
		return &Run{Prefix: key, Min: m, Next: ins}

	default: // relEqual
		n.Value = value
		return n
	}
}

// fanoutPair builds the two-item list of a freshly split Fanout, sorted
// ascending by byte. The two bytes are always distinct here.
func fanoutPair(b1 byte, n1 Node, b2 byte, n2 Node) []FanoutItem {
	if b1 < b2 {
		return []FanoutItem{{b1, n1}, {b2, n2}}
	}
	return []FanoutItem{{b2, n2}, {b1, n1}}
}

// find returns the index of b in the sorted item list, or the insertion
// index and false.
func (f *Fanout) find(b byte) (int, bool) {
	return slices.BinarySearchFunc(f.Items, b, func(it FanoutItem, b byte) int {
		return int(it.Byte) - int(b)
	})
}

func lookup(n Node, key []byte) (int, bool) {
	switch n := n.(type) {
	case nil:
		return 0, false
	case *Run:
		if !bytes.HasPrefix(key, n.Prefix) {
			return 0, false
		}
		return lookup(n.Next, key[len(n.Prefix):])
	case *Fanout:
		if len(key) == 0 {
			return 0, false
		}
		idx, ok := n.find(key[0])
		if !ok {
			return 0, false
		}
		return lookup(n.Items[idx].Node, key[1:])
	case *Inline:
		if len(key) == 0 {
			return n.Value, true
		}
		return lookup(n.Next, key)
	case *Leaf:
		if !bytes.Equal(key, n.Suffix) {
			return 0, false
		}
		return n.Value, true
	}
	panic("trie: unknown node kind")
}
