package gen

import (
	"github.com/agentic-research/themec/internal/trie"
)

// WriteKeyMatcher lowers the key trie into a C++ getDataIndex function: a
// decision tree of length guards, memcmp runs and byte switches that maps a
// dotted theme path to its index in the colors_ array, or -1.
func WriteKeyMatcher(p *Printer, t *trie.Trie) {
	p.Line("int getDataIndex(const QLatin1String &name) {")
	p.Indent()
	p.Line("auto size = name.size();")
	p.Line("auto data = name.data();")

	writeNode(p, t.Root(), 0, 0)

	p.Line("return -1;")
	p.Dedent()
	p.Line("}")
}

// writeNode emits the matching code for one node. position is the offset
// into the input already proven to match; knownLength is the strongest
// length bound established by an ancestor's guard. A fresh `size >=` guard
// is emitted only when this node's min size exceeds that bound.
func writeNode(p *Printer, n trie.Node, position, knownLength int) {
	if n == nil {
		return
	}

	guarded := knownLength < n.MinSize()
	if guarded {
		p.Linef("if (size >= %d) {", n.MinSize())
		knownLength = n.MinSize()
		p.Indent()
	}

	switch n := n.(type) {
	case *trie.Run:
		p.Linef("if (std::memcmp(data + %d, \"%s\", %d) == 0) {", position, n.Prefix, len(n.Prefix))
		p.Indent()
		writeNode(p, n.Next, position+len(n.Prefix), knownLength)
		p.Dedent()
		p.Line("}")

	case *trie.Fanout:
		p.Linef("switch (data[%d]) {", position)
		for _, it := range n.Items {
			p.Linef("case '%c': {", it.Byte)
			p.Indent()
			writeNode(p, it.Node, position+1, knownLength)
			p.Dedent()
			p.Line("}")
			p.Line("break;")
		}
		p.Line("}")

	case *trie.Inline:
		// Byte content up to here is already verified by ancestors; only
		// the exact length distinguishes this key from longer ones.
		p.Linef("if (size == %d) return %d;", len(n.TotalPrefix), n.Value)
		writeNode(p, n.Next, position, knownLength)

	case *trie.Leaf:
		switch len(n.Suffix) {
		case 0:
			p.Linef("if (size == %d) return %d;", len(n.TotalPrefix), n.Value)
		case 1:
			p.Linef("if (size == %d && data[%d] == '%c') return %d;",
				len(n.TotalPrefix), position, n.Suffix[0], n.Value)
		default:
			p.Linef("if (size == %d && std::memcmp(data + %d, \"%s\", %d) == 0) return %d;",
				len(n.TotalPrefix), position, n.Suffix, len(n.Suffix), n.Value)
		}
	}

	if guarded {
		p.Dedent()
		p.Line("}")
	}
}
