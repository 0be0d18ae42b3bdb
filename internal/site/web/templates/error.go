package templates

import (
	"context"
	"html"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/louisbranch.dev/internal/site/i18n"
)

// ErrorTitle returns the browser page title for an error page.
func ErrorTitle(statusCode int, copy i18n.Copy) string {
	if statusCode == http.StatusNotFound {
		return copy.ErrNotFoundTitle
	}
	return copy.ErrServerTitle
}

// ErrorFragment renders the body of an error page.
func ErrorFragment(statusCode int, copy i18n.Copy) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		heading := copy.ErrServerTitle
		message := copy.ErrServerBody
		if statusCode == http.StatusNotFound {
			heading = copy.ErrNotFoundTitle
			message = copy.ErrNotFoundBody
		}
		return writeStrings(w,
			"<section class=\"error\"><h1>", html.EscapeString(heading), "</h1>",
			"<p>", html.EscapeString(message), "</p>",
			"<p><a href=\"/\">", html.EscapeString(copy.BackHome), "</a></p></section>",
		)
	})
}
