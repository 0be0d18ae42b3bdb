// Package web serves the site's HTML pages.
package web

import (
	"bytes"
	"embed"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/louisbranch.dev/internal/platform/web/httpx"
	siteerrors "github.com/louisbranch/louisbranch.dev/internal/site/errors"
	"github.com/louisbranch/louisbranch.dev/internal/site/i18n"
	"github.com/louisbranch/louisbranch.dev/internal/site/profile"
	"github.com/louisbranch/louisbranch.dev/internal/site/storage"
	"github.com/louisbranch/louisbranch.dev/internal/site/web/templates"
)

// recentPostLimit caps the number of posts shown on the landing page.
const recentPostLimit = 3

//go:embed static
var staticContent embed.FS

type handler struct {
	store   storage.PostStore
	profile profile.Profile
}

// NewHandler builds the HTML handler for the site.
func NewHandler(store storage.PostStore, siteProfile profile.Profile) http.Handler {
	h := &handler{store: store, profile: siteProfile}

	staticFS, err := fs.Sub(staticContent, "static")
	if err != nil {
		// The static directory is embedded at build time; a failure here is a
		// packaging bug, not a runtime condition.
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	mux.HandleFunc("/healthz", handleHealthz)
	mux.HandleFunc("/blog", h.handleBlog)
	mux.HandleFunc("/blog/", h.handlePostDetail)
	mux.HandleFunc("/", h.handleHome)
	return mux
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *handler) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	// The root pattern matches every unregistered path.
	if r.URL.Path != "/" {
		h.renderError(w, r, http.StatusNotFound)
		return
	}

	posts, err := h.store.RecentPosts(httpx.RequestContext(r), recentPostLimit)
	if err != nil {
		log.Printf("load recent posts: %v", err)
		h.renderError(w, r, siteerrors.HTTPStatus(err))
		return
	}

	copy := i18n.For(i18n.ResolveTag(r))
	h.renderPage(w, r, http.StatusOK, h.profile.Name, templates.HomeFragment(h.profile, posts, copy))
}

func (h *handler) handleBlog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	posts, err := h.store.ListPosts(httpx.RequestContext(r))
	if err != nil {
		log.Printf("load posts: %v", err)
		h.renderError(w, r, siteerrors.HTTPStatus(err))
		return
	}

	copy := i18n.For(i18n.ResolveTag(r))
	h.renderPage(w, r, http.StatusOK, copy.NavBlog, templates.BlogFragment(posts, copy))
}

func (h *handler) handlePostDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	slug := strings.TrimPrefix(r.URL.Path, "/blog/")
	if slug == "" || strings.Contains(slug, "/") {
		h.renderError(w, r, http.StatusNotFound)
		return
	}

	post, err := h.store.GetPostBySlug(httpx.RequestContext(r), slug)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("load post %s: %v", slug, err)
		}
		h.renderError(w, r, siteerrors.HTTPStatus(err))
		return
	}

	copy := i18n.For(i18n.ResolveTag(r))
	h.renderPage(w, r, http.StatusOK, post.Title, templates.PostFragment(post, copy))
}

func (h *handler) renderError(w http.ResponseWriter, r *http.Request, statusCode int) {
	copy := i18n.For(i18n.ResolveTag(r))
	h.renderPage(w, r, statusCode, templates.ErrorTitle(statusCode, copy), templates.ErrorFragment(statusCode, copy))
}

func (h *handler) renderPage(w http.ResponseWriter, r *http.Request, statusCode int, title string, body templ.Component) {
	tag := i18n.ResolveTag(r)
	page := templates.Page(templates.PageContext{
		Title:       title,
		Lang:        tag.String(),
		Copy:        i18n.For(tag),
		CurrentPath: r.URL.Path,
	}, body)

	var buf bytes.Buffer
	if err := page.Render(httpx.RequestContext(r), &buf); err != nil {
		log.Printf("render page %s: %v", r.URL.Path, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if err := httpx.WriteHTML(w, statusCode, buf.String()); err != nil {
		log.Printf("write page %s: %v", r.URL.Path, err)
	}
}
