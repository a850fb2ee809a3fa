package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const componentToken = "component"

// CountComponents counts elements whose class, id or any attribute name
// contains "component". Matching is case-sensitive.
func CountComponents(doc *goquery.Document) int {
	count := 0
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			if isComponent(n) {
				count++
			}
		}
	})
	return count
}

func isComponent(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if strings.Contains(attr.Key, componentToken) {
			return true
		}
		if (attr.Key == "class" || attr.Key == "id") && strings.Contains(attr.Val, componentToken) {
			return true
		}
	}
	return false
}

// HasViewportMeta reports whether the document declares a viewport meta tag.
func HasViewportMeta(doc *goquery.Document) bool {
	found := false
	doc.Find("meta[name]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.EqualFold(strings.TrimSpace(s.AttrOr("name", "")), "viewport") {
			found = true
		}
		return !found
	})
	return found
}
