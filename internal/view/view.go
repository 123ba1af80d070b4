// Package view renders pages with the embedded html/template set.
package view

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"time"

	"github.com/onlinelabs/website/internal/composer"
	"github.com/onlinelabs/website/internal/content"
	"github.com/onlinelabs/website/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTemplates = []string{"post", "node", "list", "home", "author", "about", "contact", "notfound", "thanks"}

// Static returns the stylesheet and other assets served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Head is the metadata and structured data emitted in <head>.
type Head struct {
	Meta    models.Metadata
	JSONLD  []map[string]any
	NoIndex bool
}

// Engine holds one template tree per page, each sharing the layout.
type Engine struct {
	pages map[string]*template.Template
	site  composer.Site
}

type pageContext struct {
	Site composer.Site
	Head Head
	Year int
	Data any
}

// ListPage is an overview of posts or nodes.
type ListPage struct {
	Title string
	Intro string
	Path  string
	Posts []models.Post
	Nodes []models.ContentNode
}

// AuthorPage is a staff profile with their recent posts.
type AuthorPage struct {
	Profile *models.AuthorProfile
	Posts   []models.Post
}

type errorPage struct {
	Code    int
	Message string
}

func New(site composer.Site) (*Engine, error) {
	layout, err := template.New("layout.html").Funcs(funcMap()).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, path.Join("templates", name+".html")); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Engine{pages: pages, site: site}, nil
}

func (e *Engine) RenderPost(page *models.RenderedPage) ([]byte, error) {
	return e.render("post", Head{Meta: page.Metadata, JSONLD: page.JSONLD}, page)
}

func (e *Engine) RenderNode(node *models.RenderedNode) ([]byte, error) {
	return e.render("node", Head{Meta: node.Metadata, JSONLD: node.JSONLD}, node)
}

func (e *Engine) RenderList(head Head, list ListPage) ([]byte, error) {
	return e.render("list", head, list)
}

func (e *Engine) RenderHome(head Head, home *models.HomePage) ([]byte, error) {
	return e.render("home", head, home)
}

func (e *Engine) RenderAuthor(head Head, page AuthorPage) ([]byte, error) {
	return e.render("author", head, page)
}

func (e *Engine) RenderAbout(head Head, team []models.AuthorProfile) ([]byte, error) {
	return e.render("about", head, team)
}

// RenderContact renders the lead form. It posts to /api/contact and offers
// the site email address when that fails.
func (e *Engine) RenderContact(head Head) ([]byte, error) {
	return e.render("contact", head, models.Interests)
}

func (e *Engine) RenderThanks(head Head) ([]byte, error) {
	head.NoIndex = true
	return e.render("thanks", head, nil)
}

// RenderError renders the not-found page, or a generic error page for other codes.
func (e *Engine) RenderError(code int) ([]byte, error) {
	msg := "Er ging iets mis aan onze kant. Probeer het later opnieuw."
	title := "Er ging iets mis"
	if code == 404 {
		msg = "Deze pagina bestaat niet (meer)."
		title = "Pagina niet gevonden"
	}
	head := Head{Meta: models.Metadata{Title: title}, NoIndex: true}
	return e.render("notfound", head, errorPage{Code: code, Message: msg})
}

func (e *Engine) render(name string, head Head, data any) ([]byte, error) {
	t, ok := e.pages[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	ctx := pageContext{Site: e.site, Head: head, Year: time.Now().Year(), Data: data}
	if err := t.ExecuteTemplate(&buf, "layout.html", ctx); err != nil {
		return nil, fmt.Errorf("executing template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"jsonLD":   jsonLD,
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
		"plain":    content.PlainText,
		"excerpt":  func(s string) string { return content.Truncate(content.PlainText(s), 160) },
		"date":     dutchDate,
		"isoDate":  func(t time.Time) string { return t.Format("2006-01-02") },
		"section":  func(k models.NodeKind) string { return k.Section() },
	}
}

// jsonLD wraps the nodes in a single schema.org graph. json.Marshal escapes
// <, > and & so the payload cannot end the script element.
func jsonLD(nodes []map[string]any) template.JS {
	if len(nodes) == 0 {
		return ""
	}
	data, err := json.Marshal(map[string]any{
		"@context": "https://schema.org",
		"@graph":   nodes,
	})
	if err != nil {
		return template.JS("{}")
	}
	return template.JS(data)
}

var dutchMonths = [...]string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}

func dutchDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d %s %d", t.Day(), dutchMonths[t.Month()-1], t.Year())
}
