// Package roster abstracts the county detail pages that feed extraction.
//
// A View is a rendered detail page: its visible text plus its image elements.
// Sources produce successive views; the HTTP client walks the public roster,
// and test code substitutes in-memory views.
package roster

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"rosterpost/internal/extract"
)

// View is one rendered inmate detail page.
type View interface {
	// VisibleText returns the page's rendered text, one line per visual row.
	VisibleText() string
	// Images returns every image element in document order.
	Images() []extract.Image
}

// blockTags are elements that terminate a visual row when rendering text.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true,
}

// skipTags hold content the page never renders.
var skipTags = map[string]bool{
	"head": true, "noscript": true, "script": true, "style": true,
	"template": true, "title": true,
}

type htmlView struct {
	text   string
	images []extract.Image
}

// ParseDetail renders an HTML detail page into a View.
func ParseDetail(r io.Reader) (View, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return viewFromDocument(doc), nil
}

func viewFromDocument(doc *goquery.Document) *htmlView {
	var b strings.Builder
	for _, node := range doc.Nodes {
		renderText(&b, node)
	}

	var images []extract.Image
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		alt, _ := sel.Attr("alt")
		images = append(images, extract.Image{SourceRef: src, AltText: alt})
	})

	return &htmlView{text: collapseLines(b.String()), images: images}
}

func (v *htmlView) VisibleText() string { return v.text }

func (v *htmlView) Images() []extract.Image { return v.images }

// renderText walks the node tree accumulating text, breaking lines at block
// elements so that label/value rows come out the way a browser shows them.
func renderText(b *strings.Builder, node *html.Node) {
	switch node.Type {
	case html.TextNode:
		if text := strings.TrimSpace(node.Data); text != "" {
			b.WriteString(text)
			b.WriteString(" ")
		}
		return
	case html.ElementNode:
		if skipTags[node.Data] {
			return
		}
		if blockTags[node.Data] {
			b.WriteString("\n")
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		renderText(b, child)
	}
	if node.Type == html.ElementNode && blockTags[node.Data] {
		b.WriteString("\n")
	}
}

// collapseLines trims every rendered row and drops empty ones.
func collapseLines(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}

// StaticView is an in-memory View for tests and fixtures.
type StaticView struct {
	Text      string
	ImageList []extract.Image
}

func (v StaticView) VisibleText() string { return v.Text }

func (v StaticView) Images() []extract.Image { return v.ImageList }
