package templates

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/louisbranch.dev/internal/site/i18n"
	"github.com/louisbranch/louisbranch.dev/internal/site/profile"
	"github.com/louisbranch/louisbranch.dev/internal/site/storage"
)

// HomeFragment renders the landing page body: profile, projects, recent posts.
func HomeFragment(p profile.Profile, posts []storage.Post, copy i18n.Copy) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := writeStrings(w,
			"<section class=\"intro\"><h1>", html.EscapeString(p.Name), "</h1>",
		); err != nil {
			return err
		}
		if tagline := strings.TrimSpace(p.Tagline); tagline != "" {
			if err := writeStrings(w, "<p class=\"tagline\">", html.EscapeString(tagline), "</p>"); err != nil {
				return err
			}
		}
		if bio := strings.TrimSpace(p.Bio); bio != "" {
			if err := writeStrings(w, "<p class=\"bio\">", html.EscapeString(bio), "</p>"); err != nil {
				return err
			}
		}
		if len(p.Links) > 0 {
			if err := writeStrings(w, "<ul class=\"links\">"); err != nil {
				return err
			}
			for _, link := range p.Links {
				if err := writeStrings(w,
					"<li><a href=\"", html.EscapeString(link.URL), "\" rel=\"me\">", html.EscapeString(link.Label), "</a></li>",
				); err != nil {
					return err
				}
			}
			if err := writeStrings(w, "</ul>"); err != nil {
				return err
			}
		}
		if err := writeStrings(w, "</section>"); err != nil {
			return err
		}

		if len(p.Projects) > 0 {
			if err := writeStrings(w, "<section class=\"projects\"><h2>", html.EscapeString(copy.Projects), "</h2><ul>"); err != nil {
				return err
			}
			for _, project := range p.Projects {
				if err := writeProjectCard(w, project); err != nil {
					return err
				}
			}
			if err := writeStrings(w, "</ul></section>"); err != nil {
				return err
			}
		}

		if err := writeStrings(w, "<section class=\"recent\"><h2>", html.EscapeString(copy.LatestPosts), "</h2>"); err != nil {
			return err
		}
		if len(posts) == 0 {
			if err := writeStrings(w, "<p>", html.EscapeString(copy.EmptyBlog), "</p>"); err != nil {
				return err
			}
		} else {
			if err := writePostList(w, posts, copy); err != nil {
				return err
			}
		}
		return writeStrings(w,
			"<p><a href=\"/blog\">", html.EscapeString(copy.AllPosts), "</a></p></section>",
		)
	})
}

func writeProjectCard(w io.Writer, project profile.Project) error {
	name := html.EscapeString(project.Name)
	if err := writeStrings(w, "<li class=\"project\">"); err != nil {
		return err
	}
	if url := strings.TrimSpace(project.URL); url != "" {
		if err := writeStrings(w, "<a href=\"", html.EscapeString(url), "\">", name, "</a>"); err != nil {
			return err
		}
	} else {
		if err := writeStrings(w, "<span>", name, "</span>"); err != nil {
			return err
		}
	}
	if desc := strings.TrimSpace(project.Description); desc != "" {
		if err := writeStrings(w, "<p>", html.EscapeString(desc), "</p>"); err != nil {
			return err
		}
	}
	if len(project.Tags) > 0 {
		if err := writeStrings(w, "<ul class=\"tags\">"); err != nil {
			return err
		}
		for _, tag := range project.Tags {
			if err := writeStrings(w, "<li>", html.EscapeString(tag), "</li>"); err != nil {
				return err
			}
		}
		if err := writeStrings(w, "</ul>"); err != nil {
			return err
		}
	}
	return writeStrings(w, "</li>")
}

func writePostList(w io.Writer, posts []storage.Post, copy i18n.Copy) error {
	if err := writeStrings(w, "<ul class=\"posts\">"); err != nil {
		return err
	}
	for _, post := range posts {
		if err := writeStrings(w,
			"<li><article>",
			"<h3><a href=\"/blog/", html.EscapeString(post.Slug), "\">", html.EscapeString(post.Title), "</a></h3>",
			"<time datetime=\"", post.CreatedAt.UTC().Format("2006-01-02"), "\">", formatDate(post.CreatedAt), "</time>",
			"</article></li>",
		); err != nil {
			return err
		}
	}
	return writeStrings(w, "</ul>")
}
