package confluence

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractText flattens storage-format markup to plain text: script and style
// subtrees are dropped, whitespace runs collapse to single spaces, blank
// segments disappear. Malformed markup degrades to the raw payload rather
// than failing the turn.
func ExtractText(markup string) string {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return collapse(markup)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				b.WriteString(t)
				b.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return collapse(b.String())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
