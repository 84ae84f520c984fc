package trie

import (
	"bytes"
	"testing"
)

func FuzzInsertLookup(f *testing.F) {
	f.Add([]byte("forsen\x00xqc\x00forsenL\x00for\x00forsenE"))
	f.Add([]byte("tabs.text\x00tabs.line\x00tabs.backgrounds.hover"))
	f.Add([]byte("a\x00apple\x00applejuice\x00applepie\x00banana"))
	f.Fuzz(func(t *testing.T, data []byte) {
		tr := New()
		want := make(map[string]int)
		for i, key := range bytes.Split(data, []byte{0}) {
			if len(key) == 0 {
				continue
			}
			tr.Insert(key, i)
			want[string(key)] = i
		}
		for k, v := range want {
			got, ok := tr.Lookup([]byte(k))
			if !ok || got != v {
				t.Fatalf("lookup %q = %d, %v; want %d", k, got, ok, v)
			}
		}

		// No inserted key may shadow another: a lookup with one byte
		// appended must never report a value unless that longer key was
		// itself inserted.
		for k := range want {
			longer := append([]byte(k), '!')
			if _, inserted := want[string(longer)]; inserted {
				continue
			}
			if v, ok := tr.Lookup(longer); ok {
				t.Fatalf("lookup %q = %d; want a miss", longer, v)
			}
		}
	})
}
