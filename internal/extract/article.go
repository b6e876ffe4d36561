package extract

import (
	"bytes"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// ArticleStrategy applies Mozilla's Readability algorithm, which is tuned to
// recover article bodies (including table content) while discarding
// navigation and boilerplate. Recall is favored: partial articles are kept.
type ArticleStrategy struct{}

func (ArticleStrategy) Name() string { return "readability" }

func (ArticleStrategy) Extract(body []byte, pageURL string) (string, bool) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		// Relative-link resolution needs some base URL.
		u = &url.URL{Scheme: "https", Host: "localhost"}
	}
	article, err := readability.FromReader(bytes.NewReader(body), u)
	if err != nil {
		return "", false
	}
	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", false
	}
	return text, true
}
