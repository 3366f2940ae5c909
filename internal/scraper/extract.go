package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Elements that never carry posting text
const noiseSelector = "script, style, noscript, svg, iframe, nav, header, footer, form, button"

// Description containers used by the common job boards, most specific first
var descriptionSelectors = []string{
	`.jobs-description-content__text`,
	`.show-more-less-html__markup`,
	`.jobs-box__html-content`,
	`#job-details`,
	`.description__text`,
	`#content .job__description`,
	`.posting-page .section-wrapper`,
	`[data-testid="jobDescriptionText"]`,
	`#jobDescriptionText`,
	`main`,
	`article`,
}

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "tr": true, "table": true, "blockquote": true,
	"dd": true, "dt": true, "pre": true, "main": true,
}

// ExtractText returns the page title and the readable posting text.
// Block elements become line breaks; runs of whitespace collapse.
func ExtractText(page string) (title, text string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", "", err
	}

	title = cleanTitle(doc.Find("title").First().Text())
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); title == "" && h1 != "" {
		title = collapseSpaces(h1)
	}

	doc.Find(noiseSelector).Remove()

	root := doc.Find("body")
	for _, sel := range descriptionSelectors {
		if found := doc.Find(sel).First(); found.Length() > 0 && strings.TrimSpace(found.Text()) != "" {
			root = found
			break
		}
	}

	var b strings.Builder
	for _, n := range root.Nodes {
		writeText(&b, n)
	}
	return title, normalizeLines(b.String()), nil
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode, html.DocumentNode:
	default:
		return
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		b.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteString("\n")
	}
}

func normalizeLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = collapseSpaces(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cleanTitle drops common board suffixes like "Title - Company | Board"
func cleanTitle(t string) string {
	t = collapseSpaces(t)
	t = strings.Split(t, " | ")[0]
	t = strings.Split(t, " - ")[0]
	return strings.TrimSpace(t)
}
