package markup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"
)

var (
	boldStyle      = lipgloss.NewStyle().Bold(true)
	italicStyle    = lipgloss.NewStyle().Italic(true)
	underlineStyle = lipgloss.NewStyle().Underline(true)
	codeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	headingStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
)

// ToANSI renders the supported markup subset as styled terminal text. Reveal
// buffers are often mid-element; the fragment parser closes dangling tags, so
// a partially revealed <b>span keeps its styling.
func ToANSI(fragment string) string {
	nodes, err := parseFragment(fragment)
	if err != nil {
		return fragment
	}
	var b strings.Builder
	for _, n := range nodes {
		renderNode(n, lipgloss.NewStyle(), &b)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderNode(n *html.Node, style lipgloss.Style, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(style.Render(n.Data))
	case html.ElementNode:
		s := style
		switch n.Data {
		case "b", "strong":
			s = s.Inherit(boldStyle)
		case "i", "em":
			s = s.Inherit(italicStyle)
		case "u":
			s = s.Inherit(underlineStyle)
		case "code":
			s = s.Inherit(codeStyle)
		case "h1", "h2", "h3":
			s = s.Inherit(headingStyle)
		case "br":
			b.WriteByte('\n')
			return
		case "hr":
			b.WriteString(strings.Repeat("─", 20))
			b.WriteByte('\n')
			return
		case "li":
			b.WriteString("• ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderNode(c, s, b)
		}
		switch n.Data {
		case "p", "h1", "h2", "h3", "div", "ul", "ol":
			b.WriteByte('\n')
		case "li":
			b.WriteByte('\n')
		}
	}
}
