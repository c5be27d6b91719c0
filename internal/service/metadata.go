package service

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"webrecon/internal/log"
	"webrecon/internal/model"
	"webrecon/internal/util/analyzer"
)

// ParseMetadata extracts page metadata from raw HTML. It never fails:
// markup the parser cannot make sense of yields an empty PageMetadata.
func ParseMetadata(rawHTML string) *model.PageMetadata {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		log.Logger.Warn("failed to parse HTML", zap.Error(err))
		return model.NewPageMetadata()
	}
	return extractMetadata(root)
}

func extractMetadata(root *html.Node) *model.PageMetadata {
	page := model.NewPageMetadata()
	page.Title = extractTitle(root)
	page.Description = extractMetaContent(root, "description")
	page.Keywords = extractMetaContent(root, "keywords")
	page.Headings = extractHeadings(root)
	page.Paragraphs = extractParagraphs(root)
	page.Links = extractLinks(root)
	page.Images = extractImages(root)
	return page
}

// fetch the title from the page
func extractTitle(root *html.Node) *string {
	node := findFirst(root, func(n *html.Node) bool {
		return analyzer.IsElement(n, "title")
	})
	if node == nil {
		return nil
	}
	title := strings.TrimSpace(analyzer.ExtractInnerText(node))
	return &title
}

// content of the first <meta name=...> with a matching name
func extractMetaContent(root *html.Node, name string) *string {
	node := findFirst(root, func(n *html.Node) bool {
		if !analyzer.IsElement(n, "meta") {
			return false
		}
		val, ok := analyzer.GetAttr(n, "name")
		return ok && strings.EqualFold(strings.TrimSpace(val), name)
	})
	if node == nil {
		return nil
	}
	content, ok := analyzer.GetAttr(node, "content")
	if !ok {
		return nil
	}
	content = strings.TrimSpace(content)
	return &content
}

// extract the h1-h3 texts in document order
func extractHeadings(root *html.Node) map[string][]string {
	headings := make(map[string][]string, len(model.HeadingLevels))
	for _, level := range model.HeadingLevels {
		headings[level] = []string{}
	}

	analyzer.Walk(root, func(node *html.Node) {
		if node.Type != html.ElementNode {
			return
		}
		if texts, ok := headings[node.Data]; ok {
			headings[node.Data] = append(texts, strings.TrimSpace(analyzer.ExtractInnerText(node)))
		}
	})
	return headings
}

func extractParagraphs(root *html.Node) []string {
	paragraphs := []string{}
	analyzer.Walk(root, func(node *html.Node) {
		if analyzer.IsElement(node, "p") {
			paragraphs = append(paragraphs, strings.TrimSpace(analyzer.ExtractInnerText(node)))
		}
	})
	return paragraphs
}

// every <a> carrying an href, even an empty one
func extractLinks(root *html.Node) []model.Link {
	links := []model.Link{}
	analyzer.Walk(root, func(node *html.Node) {
		if !analyzer.IsLinkTag(node) {
			return
		}
		href, ok := analyzer.GetHrefValue(node)
		if !ok {
			return
		}
		links = append(links, model.Link{
			Text: strings.TrimSpace(analyzer.ExtractInnerText(node)),
			Href: href,
		})
	})
	return links
}

func extractImages(root *html.Node) []model.Image {
	images := []model.Image{}
	analyzer.Walk(root, func(node *html.Node) {
		if !analyzer.IsElement(node, "img") {
			return
		}
		src, ok := analyzer.GetAttr(node, "src")
		if !ok {
			return
		}
		alt, _ := analyzer.GetAttr(node, "alt")
		images = append(images, model.Image{Alt: strings.TrimSpace(alt), Src: src})
	})
	return images
}

func findFirst(node *html.Node, match func(*html.Node) bool) *html.Node {
	if match(node) {
		return node
	}
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// paragraphText joins parsed paragraph text for the phone collector.
func paragraphText(page *model.PageMetadata) string {
	if page == nil {
		return ""
	}
	return strings.Join(page.Paragraphs, "\n")
}
