package content

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

var (
	scriptRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	blankRe  = regexp.MustCompile(`\n{3,}`)
)

var converter = func() *md.Converter {
	c := md.NewConverter("", true, nil)
	c.Use(plugin.GitHubFlavored())
	return c
}()

// FromHTML converts an HTML template to the markdown the renderer expects.
// Scripts and styles are dropped.
func FromHTML(b []byte) (string, error) {
	cleaned := scriptRe.ReplaceAllString(string(b), "")
	cleaned = styleRe.ReplaceAllString(cleaned, "")
	out, err := converter.ConvertString(cleaned)
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}
	return strings.TrimSpace(blankRe.ReplaceAllString(out, "\n\n")), nil
}

// htmlSibling maps content/about.md to content/about.html.
func htmlSibling(locator string) string {
	if path.Ext(locator) != ".md" {
		return ""
	}
	return strings.TrimSuffix(locator, ".md") + ".html"
}

// markdownLocator is the inverse of htmlSibling. Other files map to "".
func markdownLocator(name string) string {
	switch path.Ext(name) {
	case ".md":
		return name
	case ".html":
		return strings.TrimSuffix(name, ".html") + ".md"
	}
	return ""
}
