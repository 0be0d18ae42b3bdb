// Package i18n resolves request languages and localized page copy.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "site_lang"
)

var supported = []language.Tag{
	language.AmericanEnglish,
	language.BrazilianPortuguese,
}

var matcher = language.NewMatcher(supported)

// Default returns the default language tag.
func Default() language.Tag {
	return supported[0]
}

// ResolveTag determines the best language tag for the request.
// Precedence: lang query param, cookie, Accept-Language header.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Default()
	}

	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if tag, ok := parseTag(value); ok {
			return tag
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := parseTag(cookie.Value); ok {
			return tag
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			_, idx, _ := matcher.Match(tags...)
			return supported[idx]
		}
	}

	return Default()
}

func parseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(value)
	if err != nil {
		return language.Tag{}, false
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Tag{}, false
	}
	return supported[idx], true
}

// Copy holds translatable page copy.
type Copy struct {
	NavHome          string
	NavBlog          string
	LatestPosts      string
	ReadMore         string
	AllPosts         string
	Projects         string
	EmptyBlog        string
	PublishedOn      string
	ErrNotFoundTitle string
	ErrNotFoundBody  string
	ErrServerTitle   string
	ErrServerBody    string
	BackHome         string
}

// For returns localized copy for the provided tag.
func For(tag language.Tag) Copy {
	if tag == language.BrazilianPortuguese {
		return Copy{
			NavHome:          "Início",
			NavBlog:          "Blog",
			LatestPosts:      "Publicações recentes",
			ReadMore:         "Leia mais",
			AllPosts:         "Todas as publicações",
			Projects:         "Projetos",
			EmptyBlog:        "Nada publicado ainda.",
			PublishedOn:      "Publicado em",
			ErrNotFoundTitle: "Página não encontrada",
			ErrNotFoundBody:  "A página que você procura não existe.",
			ErrServerTitle:   "Algo deu errado",
			ErrServerBody:    "Tente novamente em instantes.",
			BackHome:         "Voltar ao início",
		}
	}
	return Copy{
		NavHome:          "Home",
		NavBlog:          "Blog",
		LatestPosts:      "Latest posts",
		ReadMore:         "Read more",
		AllPosts:         "All posts",
		Projects:         "Projects",
		EmptyBlog:        "Nothing published yet.",
		PublishedOn:      "Published on",
		ErrNotFoundTitle: "Page not found",
		ErrNotFoundBody:  "The page you are looking for does not exist.",
		ErrServerTitle:   "Something went wrong",
		ErrServerBody:    "Please try again shortly.",
		BackHome:         "Back home",
	}
}
