package rawxml

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTree(t *testing.T) {
	root := New("TestCustomTag").SetAttr("test", "value")
	root.AddChild(
		New("NestedCustomTag1").SetAttr("test", "value1"),
		New("NestedCustomTag2").SetText("nested text"),
	)

	assert.Equal(t, "TestCustomTag", root.Tag)
	v, ok := root.Attr("test")
	require.True(t, ok)
	assert.Equal(t, "value", v)

	_, ok = root.Attr("missing")
	assert.False(t, ok)

	require.Len(t, root.Children, 2)
	assert.Equal(t, "nested text", root.Child("NestedCustomTag2").Text)
	assert.Nil(t, root.Child("NoSuchTag"))
}

func TestSetAttrReplaces(t *testing.T) {
	n := New("Tag").SetAttr("a", "1").SetAttr("b", "2").SetAttr("a", "3")
	require.Len(t, n.Attrs, 2)
	v, _ := n.Attr("a")
	assert.Equal(t, "3", v)
	assert.Equal(t, []Attr{{Name: "a", Value: "3"}, {Name: "b", Value: "2"}}, n.Attrs)
}

func TestParseRoundTrip(t *testing.T) {
	const fragment = `<TestCustomTag test="value"><NestedCustomTag1 test="value1"></NestedCustomTag1><NestedCustomTag2>nested text</NestedCustomTag2></TestCustomTag>`

	root, err := Parse([]byte(fragment))
	require.NoError(t, err)
	assert.Equal(t, "TestCustomTag", root.Tag)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "NestedCustomTag1", root.Children[0].Tag)
	assert.Equal(t, "nested text", root.Children[1].Text)

	assert.Equal(t, fragment, root.String())
}

func TestParseIndentedFragment(t *testing.T) {
	const fragment = `
<Outer a="1">
  <Inner>
    text here
  </Inner>
</Outer>`

	root, err := Parse([]byte(fragment))
	require.NoError(t, err)
	assert.Equal(t, "Outer", root.Tag)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "text here", root.Children[0].Text)
	// Indentation whitespace around child elements is trimmed.
	assert.Equal(t, "", root.Text)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("<Open><Unclosed></Open>"))
	require.Error(t, err)
}

func TestClone(t *testing.T) {
	root := New("Root").SetAttr("k", "v")
	child := New("Child").SetText("payload")
	root.AddChild(child)

	clone := root.Clone()
	require.Equal(t, root, clone)

	child.Text = "changed"
	child.SetAttr("extra", "1")
	root.SetAttr("k", "changed")

	assert.Equal(t, "payload", clone.Children[0].Text)
	assert.Empty(t, clone.Children[0].Attrs)
	v, _ := clone.Attr("k")
	assert.Equal(t, "v", v)
}

func TestCloneNil(t *testing.T) {
	var n *Node
	assert.Nil(t, n.Clone())
}

func TestMarshalWithinDocument(t *testing.T) {
	type wrapper struct {
		XMLName xml.Name `xml:"Wrapper"`
		Content []*Node  `xml:",any"`
	}

	w := wrapper{Content: []*Node{New("Inner").SetAttr("id", "7")}}
	data, err := xml.Marshal(&w)
	require.NoError(t, err)
	assert.Equal(t, `<Wrapper><Inner id="7"></Inner></Wrapper>`, string(data))

	var back wrapper
	require.NoError(t, xml.Unmarshal(data, &back))
	require.Len(t, back.Content, 1)
	assert.Equal(t, "Inner", back.Content[0].Tag)
}

func TestMarshalEmptyTag(t *testing.T) {
	_, err := xml.Marshal(&Node{})
	require.Error(t, err)
	assert.Equal(t, "", (&Node{}).String())
}
