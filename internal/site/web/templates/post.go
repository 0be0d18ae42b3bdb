package templates

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/louisbranch.dev/internal/site/i18n"
	"github.com/louisbranch/louisbranch.dev/internal/site/storage"
)

// PostFragment renders one post body. Blank-line separated chunks of the
// content become paragraphs.
func PostFragment(post storage.Post, copy i18n.Copy) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := writeStrings(w,
			"<article class=\"post\"><h1>", html.EscapeString(post.Title), "</h1>",
			"<p class=\"meta\">", html.EscapeString(copy.PublishedOn), " ",
			"<time datetime=\"", post.CreatedAt.UTC().Format("2006-01-02"), "\">", formatDate(post.CreatedAt), "</time></p>",
		); err != nil {
			return err
		}
		for _, paragraph := range splitParagraphs(post.Content) {
			if err := writeStrings(w, "<p>", html.EscapeString(paragraph), "</p>"); err != nil {
				return err
			}
		}
		return writeStrings(w, "</article>")
	})
}

func splitParagraphs(content string) []string {
	chunks := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n")
	paragraphs := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		paragraphs = append(paragraphs, chunk)
	}
	return paragraphs
}
