package layout

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Layout is the parsed layout.yml: named reusable struct definitions plus
// the top-level structs generated into the theme class. Both lists are kept
// sorted by name so generated output is stable across runs.
type Layout struct {
	Definitions []Definition
	Items       []Struct

	defs map[string]Definition
}

// Definition is a named struct under `definitions:`, referenced from the
// layout via `ref:`.
type Definition struct {
	Name   string
	Fields []Item
	Count  int
}

// Item is a single entry of a struct: a bare color field, a reference to a
// definition, or a nested anonymous struct.
type Item interface {
	// ItemCount is the number of color fields reachable through this item.
	ItemCount() int
}

// Field is a single color slot.
type Field struct {
	Name string
}

// Ref embeds a named definition under a field name.
type Ref struct {
	FieldName string
	Target    string
	Count     int
}

// Struct is a nested anonymous struct.
type Struct struct {
	FieldName string
	Fields    []Item
	Count     int
}

func (Field) ItemCount() int    { return 1 }
func (r Ref) ItemCount() int    { return r.Count }
func (s Struct) ItemCount() int { return s.Count }

// FlatItem is a layout item after flattening: a field carrying its assigned
// array index, or a struct of flat items.
type FlatItem interface {
	flatItem()
}

// FlatField is a color field bound to its slot in the colors_ array.
type FlatField struct {
	Name string
	ID   int
}

// FlatStruct groups flat items under a struct name.
type FlatStruct struct {
	Name   string
	Fields []FlatItem
}

func (FlatField) flatItem()  {}
func (FlatStruct) flatItem() {}

type rawStruct struct {
	Fields yaml.Node `yaml:"fields"`
	Ref    string    `yaml:"ref"`
}

type rawFile struct {
	Definitions map[string]rawStruct `yaml:"definitions"`
	Layout      map[string]rawStruct `yaml:"layout"`
}

// Parse reads a layout.yml document. Definitions may reference earlier
// definitions (in name order); layout entries may reference any definition.
func Parse(source []byte) (*Layout, error) {
	var raw rawFile
	if err := yaml.Unmarshal(source, &raw); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	l := &Layout{defs: make(map[string]Definition)}

	for _, name := range sortedKeys(raw.Definitions) {
		rs := raw.Definitions[name]
		item, err := convertStruct(l, name, rs)
		if err != nil {
			return nil, err
		}
		s, ok := item.(Struct)
		if !ok {
			return nil, fmt.Errorf("layout: definition of %q isn't a struct", name)
		}
		def := Definition{Name: name, Fields: s.Fields, Count: s.Count}
		l.Definitions = append(l.Definitions, def)
		l.defs[name] = def
	}

	for _, name := range sortedKeys(raw.Layout) {
		rs := raw.Layout[name]
		item, err := convertStruct(l, name, rs)
		if err != nil {
			return nil, err
		}
		s, ok := item.(Struct)
		if !ok {
			return nil, fmt.Errorf("layout: layout of %q isn't a struct", name)
		}
		l.Items = append(l.Items, s)
	}

	return l, nil
}

// CountItems is the total number of color fields, i.e. the size of the
// generated colors_ array.
func (l *Layout) CountItems() int {
	n := 0
	for _, s := range l.Items {
		n += s.Count
	}
	return n
}

// Flatten resolves refs and assigns each color field a sequential 0-based
// id in traversal order. The (dotted path, id) pairs derived from the result
// are what the key trie is built from.
func (l *Layout) Flatten() []FlatStruct {
	id := 0
	out := make([]FlatStruct, 0, len(l.Items))
	for _, s := range l.Items {
		out = append(out, l.flattenStruct(&id, s.FieldName, s.Fields))
	}
	return out
}

func (l *Layout) flattenStruct(id *int, name string, items []Item) FlatStruct {
	flat := FlatStruct{Name: name}
	for _, it := range items {
		switch it := it.(type) {
		case Ref:
			def, ok := l.defs[it.Target]
			if !ok {
				// Refs are resolved during Parse; a dangling one here is a
				// builder bug.
				panic(fmt.Sprintf("layout: referenced struct not found (%s)", it.Target))
			}
			flat.Fields = append(flat.Fields, l.flattenStruct(id, it.FieldName, def.Fields))
		case Field:
			flat.Fields = append(flat.Fields, FlatField{Name: it.Name, ID: *id})
			*id++
		case Struct:
			flat.Fields = append(flat.Fields, l.flattenStruct(id, it.FieldName, it.Fields))
		}
	}
	return flat
}

func convertStruct(l *Layout, name string, rs rawStruct) (Item, error) {
	switch {
	case rs.Ref != "" && !rs.Fields.IsZero():
		return nil, fmt.Errorf("layout: found struct with both 'ref' and 'fields' in %s", name)
	case rs.Ref != "":
		def, ok := l.defs[rs.Ref]
		if !ok {
			return nil, fmt.Errorf("layout: couldn't find definition for %q", rs.Ref)
		}
		return Ref{FieldName: name, Target: rs.Ref, Count: def.Count}, nil
	case !rs.Fields.IsZero():
		return convertFields(l, name, &rs.Fields)
	default:
		return nil, fmt.Errorf("layout: found struct with neither 'ref' nor 'fields' in %s", name)
	}
}

// convertFields handles the two spellings of `fields:`: a sequence of bare
// field names, or a mapping of name to null (bare field) or nested struct.
// Mapping entries are sorted by name for stable output.
func convertFields(l *Layout, name string, node *yaml.Node) (Item, error) {
	s := Struct{FieldName: name}

	switch node.Kind {
	case yaml.SequenceNode:
		for _, entry := range node.Content {
			var field string
			if err := entry.Decode(&field); err != nil {
				return nil, fmt.Errorf("layout: fields of %s: %w", name, err)
			}
			s.Fields = append(s.Fields, Field{Name: field})
			s.Count++
		}

	case yaml.MappingNode:
		type pair struct {
			key   string
			value *yaml.Node
		}
		pairs := make([]pair, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			pairs = append(pairs, pair{key: node.Content[i].Value, value: node.Content[i+1]})
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

		for _, p := range pairs {
			if p.value.Tag == "!!null" {
				s.Fields = append(s.Fields, Field{Name: p.key})
				s.Count++
				continue
			}
			var inner rawStruct
			if err := p.value.Decode(&inner); err != nil {
				return nil, fmt.Errorf("layout: fields of %s: %w", name, err)
			}
			item, err := convertStruct(l, p.key, inner)
			if err != nil {
				return nil, err
			}
			s.Fields = append(s.Fields, item)
			s.Count += item.ItemCount()
		}

	default:
		return nil, fmt.Errorf("layout: fields of %s must be a mapping or sequence", name)
	}

	return s, nil
}

func sortedKeys(m map[string]rawStruct) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
