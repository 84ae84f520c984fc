package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSource = `
definitions:
  Backgrounds:
    fields: [regular, hover]
layout:
  tabs:
    fields:
      text:
      backgrounds:
        ref: Backgrounds
      line:
        fields: [regular, hover]
  window:
    fields:
      background:
`

func TestParse(t *testing.T) {
	l, err := Parse([]byte(testSource))
	require.NoError(t, err)

	require.Len(t, l.Definitions, 1)
	def := l.Definitions[0]
	assert.Equal(t, "Backgrounds", def.Name)
	assert.Equal(t, 2, def.Count)
	assert.Equal(t, []Item{Field{Name: "regular"}, Field{Name: "hover"}}, def.Fields)

	require.Len(t, l.Items, 2)
	tabs := l.Items[0]
	assert.Equal(t, "tabs", tabs.FieldName)
	assert.Equal(t, 5, tabs.Count)
	// Mapping fields are sorted by name.
	assert.Equal(t, []Item{
		Ref{FieldName: "backgrounds", Target: "Backgrounds", Count: 2},
		Struct{FieldName: "line", Fields: []Item{Field{Name: "regular"}, Field{Name: "hover"}}, Count: 2},
		Field{Name: "text"},
	}, tabs.Fields)

	window := l.Items[1]
	assert.Equal(t, "window", window.FieldName)
	assert.Equal(t, 1, window.Count)

	assert.Equal(t, 6, l.CountItems())
}

func TestFlattenAssignsSequentialIDs(t *testing.T) {
	l, err := Parse([]byte(testSource))
	require.NoError(t, err)

	flat := l.Flatten()
	require.Len(t, flat, 2)

	assert.Equal(t, FlatStruct{
		Name: "tabs",
		Fields: []FlatItem{
			FlatStruct{Name: "backgrounds", Fields: []FlatItem{
				FlatField{Name: "regular", ID: 0},
				FlatField{Name: "hover", ID: 1},
			}},
			FlatStruct{Name: "line", Fields: []FlatItem{
				FlatField{Name: "regular", ID: 2},
				FlatField{Name: "hover", ID: 3},
			}},
			FlatField{Name: "text", ID: 4},
		},
	}, flat[0])

	assert.Equal(t, FlatStruct{
		Name:   "window",
		Fields: []FlatItem{FlatField{Name: "background", ID: 5}},
	}, flat[1])
}

func TestParseRefAndFields(t *testing.T) {
	_, err := Parse([]byte(`
definitions:
  A:
    fields: [x]
layout:
  tabs:
    fields:
      bad:
        ref: A
        fields: [y]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both 'ref' and 'fields'")
}

func TestParseRefNotFound(t *testing.T) {
	_, err := Parse([]byte(`
layout:
  tabs:
    fields:
      bad:
        ref: Missing
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `couldn't find definition for "Missing"`)
}

func TestParseDefinitionNotStruct(t *testing.T) {
	_, err := Parse([]byte(`
definitions:
  A:
    fields: [x]
  B:
    ref: A
layout:
  tabs:
    fields: [y]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `definition of "B" isn't a struct`)
}

func TestParseLayoutNotStruct(t *testing.T) {
	_, err := Parse([]byte(`
definitions:
  A:
    fields: [x]
layout:
  tabs:
    ref: A
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `layout of "tabs" isn't a struct`)
}

func TestParseEmptyStruct(t *testing.T) {
	_, err := Parse([]byte(`
layout:
  tabs: {}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither 'ref' nor 'fields'")
}

func TestDefinitionsMayReferenceEarlierDefinitions(t *testing.T) {
	l, err := Parse([]byte(`
definitions:
  Backgrounds:
    fields: [regular, hover]
  Tab:
    fields:
      backgrounds:
        ref: Backgrounds
      text:
layout:
  tabs:
    fields:
      selected:
        ref: Tab
`))
	require.NoError(t, err)
	assert.Equal(t, 3, l.CountItems())

	flat := l.Flatten()
	require.Len(t, flat, 1)
	assert.Equal(t, FlatStruct{
		Name: "tabs",
		Fields: []FlatItem{
			FlatStruct{Name: "selected", Fields: []FlatItem{
				FlatStruct{Name: "backgrounds", Fields: []FlatItem{
					FlatField{Name: "regular", ID: 0},
					FlatField{Name: "hover", ID: 1},
				}},
				FlatField{Name: "text", ID: 2},
			}},
		},
	}, flat[0])
}
