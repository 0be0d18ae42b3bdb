package templates

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/louisbranch.dev/internal/site/i18n"
	"github.com/louisbranch/louisbranch.dev/internal/site/storage"
)

// BlogFragment renders the blog listing body with every post, newest first.
func BlogFragment(posts []storage.Post, copy i18n.Copy) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := writeStrings(w, "<section class=\"blog\"><h1>", html.EscapeString(copy.NavBlog), "</h1>"); err != nil {
			return err
		}
		if len(posts) == 0 {
			if err := writeStrings(w, "<p>", html.EscapeString(copy.EmptyBlog), "</p>"); err != nil {
				return err
			}
			return writeStrings(w, "</section>")
		}
		if err := writePostList(w, posts, copy); err != nil {
			return err
		}
		return writeStrings(w, "</section>")
	})
}
