package ast

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func testDocument() *Document {
	return &Document{
		Blocks: []*Block{
			{
				Name:        "AppState",
				Expressions: map[string]string{"appid": "730", "name": "Counter-Strike 2"},
				Children: []*Block{
					{Name: "InstalledDepots", Expressions: map[string]string{}, Children: []*Block{
						{Name: "731", Expressions: map[string]string{"manifest": "1"}},
						{Name: "732", Expressions: map[string]string{"manifest": "2"}},
					}},
					{Name: "UserConfig", Expressions: map[string]string{"language": "english"}},
					{Name: "UserConfig", Expressions: map[string]string{"language": "german"}},
				},
			},
		},
	}
}

func TestDocumentRootAndFind(t *testing.T) {
	doc := testDocument()

	require.Equal(t, "AppState", doc.Root().Name)
	require.Nil(t, (&Document{}).Root())
	require.Nil(t, (*Document)(nil).Root())

	b := doc.Find("AppState", "InstalledDepots", "732")
	require.NotNil(t, b)
	v, ok := b.Get("manifest")
	require.True(t, ok)
	require.Equal(t, "2", v)

	require.Equal(t, "english", doc.Find("AppState", "UserConfig").Expressions["language"])
	require.Nil(t, doc.Find("AppState", "Missing", "732"))
	require.Nil(t, doc.Find("Other"))
	require.Nil(t, doc.Find())
}

func TestBlockHelpers(t *testing.T) {
	root := testDocument().Root()

	_, ok := root.Get("missing")
	require.False(t, ok)
	require.Equal(t, []string{"appid", "name"}, root.Keys())

	configs := root.ChildrenNamed("UserConfig")
	require.Len(t, configs, 2)
	require.Equal(t, "german", configs[1].Expressions["language"])
	require.Empty(t, root.ChildrenNamed("Nope"))

	var nilBlock *Block
	require.Nil(t, nilBlock.Child("x"))
	require.Nil(t, nilBlock.Keys())
	_, ok = nilBlock.Get("x")
	require.False(t, ok)
}

func TestEqualIgnoresRanges(t *testing.T) {
	a := testDocument()
	b := testDocument()
	b.Blocks[0].Range = hcl.Range{Filename: "x.acf", Start: hcl.Pos{Line: 3, Column: 1, Byte: 20}}
	require.True(t, a.Equal(b))

	b.Blocks[0].Children[1].Expressions["language"] = "french"
	require.False(t, a.Equal(b))

	require.False(t, a.Equal(nil))
	require.True(t, (*Document)(nil).Equal(nil))
	require.True(t, (&Document{}).Equal(&Document{Blocks: []*Block{}}))
}

func TestValue(t *testing.T) {
	val := testDocument().Value()
	require.True(t, val.Type().IsTupleType())
	require.Equal(t, 1, val.LengthInt())

	root := val.Index(cty.NumberIntVal(0))
	require.Equal(t, "AppState", root.GetAttr("name").AsString())
	require.Equal(t, "730", root.GetAttr("expressions").Index(cty.StringVal("appid")).AsString())

	children := root.GetAttr("children")
	require.Equal(t, 3, children.LengthInt())
	depots := children.Index(cty.NumberIntVal(0))
	require.Equal(t, "InstalledDepots", depots.GetAttr("name").AsString())
	require.Equal(t, 0, depots.GetAttr("expressions").LengthInt())
	require.Equal(t, 2, depots.GetAttr("children").LengthInt())
}

func TestValueEmpty(t *testing.T) {
	require.True(t, (&Document{}).Value().RawEquals(cty.EmptyTupleVal))

	b := &Block{Name: "Empty"}
	v := b.Value()
	require.Equal(t, "Empty", v.GetAttr("name").AsString())
	require.True(t, v.GetAttr("children").RawEquals(cty.EmptyTupleVal))
	require.Equal(t, 0, v.GetAttr("expressions").LengthInt())
}
