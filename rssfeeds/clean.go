package rssfeeds

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// CleanText turns feed HTML into a single line of plain text
func CleanText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	nodes, err := html.ParseFragment(strings.NewReader(s), bodyContext)
	if err != nil {
		return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
	}

	var b strings.Builder
	for _, n := range nodes {
		writeText(&b, n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
			return
		}
		// tags read as word breaks
		b.WriteByte(' ')
		defer b.WriteByte(' ')
	case html.CommentNode:
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
}
