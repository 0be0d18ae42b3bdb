// Package templates renders the site's HTML pages as templ components.
package templates

import (
	"context"
	"html"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/louisbranch.dev/internal/site/i18n"
)

// PageContext provides shared layout context for pages.
type PageContext struct {
	Title       string
	Lang        string
	Copy        i18n.Copy
	CurrentPath string
}

// Page wraps a body component in the site chrome.
func Page(pc PageContext, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := strings.TrimSpace(pc.Lang)
		if lang == "" {
			lang = "en-US"
		}
		if err := writeStrings(w,
			"<!DOCTYPE html><html lang=\"", html.EscapeString(lang), "\"><head>",
			"<meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">",
			"<title>", html.EscapeString(pc.Title), "</title>",
			"<link rel=\"stylesheet\" href=\"/static/site.css\">",
			"</head><body><header><nav>",
			navLink("/", pc.Copy.NavHome, pc.CurrentPath == "/"),
			navLink("/blog", pc.Copy.NavBlog, pc.CurrentPath == "/blog" || strings.HasPrefix(pc.CurrentPath, "/blog/")),
			"</nav></header><main>",
		); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		return writeStrings(w, "</main></body></html>")
	})
}

func navLink(href, label string, active bool) string {
	class := ""
	if active {
		class = " class=\"active\""
	}
	return "<a href=\"" + href + "\"" + class + ">" + html.EscapeString(label) + "</a>"
}

func writeStrings(w io.Writer, parts ...string) error {
	for _, part := range parts {
		if _, err := io.WriteString(w, part); err != nil {
			return err
		}
	}
	return nil
}

func formatDate(value time.Time) string {
	return value.UTC().Format("January 2, 2006")
}
