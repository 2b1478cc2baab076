package serialize

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/mt940convert/internal/model"
)

// node is a generic element tree used to check output shape.
type node struct {
	Name     string
	Text     string
	Children []*node
}

func (n *node) child(name string) *node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func parseTree(t *testing.T, r io.Reader) *node {
	t.Helper()
	dec := xml.NewDecoder(r)
	var stack []*node
	var root *node
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)

		switch el := tok.(type) {
		case xml.StartElement:
			n := &node{Name: el.Name.Local}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			} else {
				root = n
			}
			stack = append(stack, n)
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(el)
			}
		case xml.EndElement:
			top := stack[len(stack)-1]
			if len(top.Children) > 0 {
				top.Text = strings.TrimSpace(top.Text)
			}
			stack = stack[:len(stack)-1]
		}
	}
	require.NotNil(t, root, "document has no root element")
	return root
}

func TestXML_RoundTrip(t *testing.T) {
	batch := sampleBatch()
	out, err := XML(batch)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))

	root := parseTree(t, strings.NewReader(out))
	assert.Equal(t, "transactions", root.Name)
	require.Len(t, root.Children, len(batch))

	for i, el := range root.Children {
		assert.Equal(t, "transaction", el.Name)
		require.Len(t, el.Children, 3)
		assert.Equal(t, []string{"date", "amount", "description"}, []string{
			el.Children[0].Name, el.Children[1].Name, el.Children[2].Name,
		})
		assert.Equal(t, batch[i].Date, el.child("date").Text)
		assert.Equal(t, batch[i].AmountString(), el.child("amount").Text)
		assert.Equal(t, batch[i].Description, el.child("description").Text)
	}
	assert.Equal(t, model.NaN, root.Children[2].child("amount").Text)
}

func TestXML_Empty(t *testing.T) {
	out, err := XML(model.Batch{})
	require.NoError(t, err)
	assert.Contains(t, out, "<transactions></transactions>")

	root := parseTree(t, strings.NewReader(out))
	assert.Equal(t, "transactions", root.Name)
	assert.Empty(t, root.Children)
}

func TestXML_EscapesMarkup(t *testing.T) {
	out, err := XML(sampleBatch())
	require.NoError(t, err)
	assert.Contains(t, out, "Groceries &amp; more &lt;store&gt;")
}
