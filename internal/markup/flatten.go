// Package markup turns an HTML fragment into a flat reveal sequence and
// back into styled terminal text. Element boundaries become opaque markers;
// text becomes one animatable unit per grapheme cluster, so a multi-rune
// emoji or a combining accent reveals as a single step.
package markup

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/llehouerou/typewriter/internal/typewriter"
)

// Elements whose open marker has no matching close marker.
var voidElements = map[string]bool{
	"br":  true,
	"hr":  true,
	"img": true,
}

// Flatten parses content as an HTML fragment and flattens it into a reveal
// sequence. Malformed markup is tolerated: the parser recovers the way a
// browser would, so the result is always a usable sequence.
func Flatten(content string) (*typewriter.Sequence, error) {
	nodes, err := parseFragment(content)
	if err != nil {
		return nil, err
	}
	var ops []typewriter.Operation
	for _, n := range nodes {
		flattenNode(n, &ops)
	}
	return typewriter.NewSequence(ops), nil
}

func flattenNode(n *html.Node, ops *[]typewriter.Operation) {
	switch n.Type {
	case html.TextNode:
		gr := uniseg.NewGraphemes(n.Data)
		for gr.Next() {
			*ops = append(*ops, typewriter.Unit(gr.Str()))
		}
	case html.ElementNode:
		*ops = append(*ops, typewriter.OpenMarker(openTag(n)))
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			flattenNode(c, ops)
		}
		if !voidElements[n.Data] {
			*ops = append(*ops, typewriter.CloseMarker("</"+n.Data+">"))
		}
	default:
		// Comments and doctypes carry nothing to reveal.
	}
}

// openTag rebuilds the verbatim opening marker, attribute values escaped.
func openTag(n *html.Node) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Val))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	return b.String()
}

// parseFragment parses content in a div context, the way a reveal buffer is
// embedded in its host surface.
func parseFragment(content string) ([]*html.Node, error) {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	return html.ParseFragment(strings.NewReader(content), ctx)
}
