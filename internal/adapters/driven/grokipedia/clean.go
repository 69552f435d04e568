package grokipedia

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// plainText reduces an HTML fragment such as a highlighted search snippet
// to whitespace-normalised text. Input without markup is only normalised.
func plainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return collapseSpace(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapseSpace(fragment)
	}
	doc.Find("script, style, noscript").Remove()

	return collapseSpace(doc.Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
