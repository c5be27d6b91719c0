package analyzer

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractInnerText extracts all visible text content inside a node.
// Script and style bodies are skipped.
func ExtractInnerText(node *html.Node) string {
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(node)
	return sb.String()
}

// IsElement checks whether the node is an element with the given tag name.
func IsElement(node *html.Node, tag string) bool {
	return node.Type == html.ElementNode && node.Data == tag
}

// IsLinkTag checks whether the current node represents an <a> tag.
func IsLinkTag(node *html.Node) bool {
	return IsElement(node, "a")
}

// GetAttr returns the value of the named attribute and whether it is present.
// An attribute present with an empty value reports ok == true.
func GetAttr(node *html.Node, key string) (string, bool) {
	for _, attr := range node.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// GetHrefValue finds and returns the href attribute from an <a> tag.
// ok is false when the tag has no href at all.
func GetHrefValue(node *html.Node) (href string, ok bool) {
	return GetAttr(node, "href")
}

// Walk visits node and its descendants in document order.
func Walk(node *html.Node, visit func(*html.Node)) {
	visit(node)
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, visit)
	}
}
