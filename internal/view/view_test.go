package view

import (
	"io/fs"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"

	"github.com/onlinelabs/website/internal/composer"
	"github.com/onlinelabs/website/internal/models"
)

var testSite = composer.DefaultSite("https://www.onlinelabs.nl", "info@onlinelabs.nl")

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(testSite)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func testPage(author *models.AuthorProfile, avatar string) *models.RenderedPage {
	post := &models.Post{
		Slug:              "lokale-seo",
		Title:             "Lokale SEO",
		AuthorDisplayName: "Zara Fung",
		PublishedAt:       time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	if author != nil {
		post.AuthorDisplayName = author.DisplayName
	}
	toc := []models.HeadingEntry{{Level: 2, Text: "Begin", ID: "begin"}}
	faqs := []models.FaqEntry{{Question: "Wat?", AnswerHTML: "<p>Dit.</p>", Answer: "Dit."}}
	page := composer.ComposePage(testSite, post, models.SeoMeta{Description: "Alles over lokale SEO"}, `<h2 id="begin">Begin</h2>`, toc, faqs, author)
	page.AvatarURL = avatar
	return &page
}

// hasClass reports whether any element in doc carries class.
func hasClass(t *testing.T, doc string, class string) bool {
	t.Helper()
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("rendered page does not parse: %v", err)
	}
	var found bool
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "class" {
					for _, c := range strings.Fields(a.Val) {
						if c == class {
							found = true
						}
					}
				}
			}
		}
		for c := n.FirstChild; c != nil && !found; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

func TestRenderPost_WithProfile(t *testing.T) {
	profile := &models.AuthorProfile{Slug: "imre-bernath", DisplayName: "Imre Bernáth", Title: "Oprichter", Bio: "SEO-specialist."}
	out, err := newTestEngine(t).RenderPost(testPage(profile, "/images/team/imre-bernath.webp"))
	if err != nil {
		t.Fatalf("RenderPost() error = %v", err)
	}
	doc := string(out)

	if !hasClass(t, doc, "author-bio") {
		t.Error("author-bio block missing for a resolved profile")
	}
	if !strings.Contains(doc, `href="/auteur/imre-bernath"`) {
		t.Error("author link missing")
	}
	for _, want := range []string{
		`<title>Lokale SEO | OnlineLabs</title>`,
		`<meta name="description" content="Alles over lokale SEO">`,
		`<link rel="canonical" href="https://www.onlinelabs.nl/blog/lokale-seo">`,
		`<script type="application/ld+json">{"@context":"https://schema.org","@graph":[`,
		`<h2 id="begin">Begin</h2>`,
		`<a href="#begin">Begin</a>`,
		`<summary>Wat?</summary>`,
		`1 maart 2025`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("rendered post missing %q", want)
		}
	}
}

func TestRenderPost_WithoutProfile(t *testing.T) {
	out, err := newTestEngine(t).RenderPost(testPage(nil, "/images/team/zara-fung.webp"))
	if err != nil {
		t.Fatalf("RenderPost() error = %v", err)
	}
	doc := string(out)

	if hasClass(t, doc, "author-bio") {
		t.Error("author-bio block must produce no DOM node without a profile")
	}
	if strings.Contains(doc, "/auteur/") {
		t.Error("author link must be absent without a profile")
	}
	if !strings.Contains(doc, `<span class="author-name">Zara Fung</span>`) {
		t.Error("byline name must always be shown")
	}
	if !strings.Contains(doc, `src="/images/team/zara-fung.webp"`) {
		t.Error("former staff keep their byline avatar")
	}
}

func TestRenderPost_EscapesJSONLD(t *testing.T) {
	page := testPage(nil, "")
	page.JSONLD = []map[string]any{{"@type": "WebPage", "name": "</script><script>alert(1)</script>"}}

	out, err := newTestEngine(t).RenderPost(page)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "<script>alert(1)") {
		t.Error("JSON-LD content must not be able to close the script element")
	}
}

func TestRenderList(t *testing.T) {
	list := ListPage{
		Title: "Diensten",
		Nodes: []models.ContentNode{{Kind: models.KindService, Slug: "seo", Title: "SEO", ExcerptHTML: "<p>Beter gevonden</p>"}},
	}
	out, err := newTestEngine(t).RenderList(Head{Meta: models.Metadata{Title: "Diensten"}}, list)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `href="/diensten/seo"`) || !strings.Contains(string(out), "Beter gevonden") {
		t.Errorf("list page missing node card:\n%s", out)
	}

	empty, err := newTestEngine(t).RenderList(Head{}, ListPage{Title: "Cases"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(empty), "nog niets te zien") {
		t.Error("empty list should show a placeholder")
	}
}

func TestRenderHome_DegradedSections(t *testing.T) {
	out, err := newTestEngine(t).RenderHome(Head{}, &models.HomePage{})
	if err != nil {
		t.Fatalf("RenderHome() error = %v", err)
	}
	doc := string(out)
	if !strings.Contains(doc, "Online groeien met OnlineLabs") {
		t.Error("hero should fall back to the default title")
	}
	if hasClass(t, doc, "testimonials") {
		t.Error("empty testimonials section should be omitted")
	}
}

func TestRenderErrorAndThanks(t *testing.T) {
	e := newTestEngine(t)

	notFound, err := e.RenderError(404)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(notFound), "Pagina niet gevonden") || !strings.Contains(string(notFound), `content="noindex, follow"`) {
		t.Errorf("404 page = %s", notFound)
	}

	thanks, err := e.RenderThanks(Head{Meta: models.Metadata{Title: "Bedankt"}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(thanks), "Bedankt voor je bericht") {
		t.Error("thanks page content missing")
	}
}

func TestDutchDate(t *testing.T) {
	if got := dutchDate(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)); got != "31 december 2024" {
		t.Errorf("dutchDate() = %q", got)
	}
	if got := dutchDate(time.Time{}); got != "" {
		t.Errorf("dutchDate(zero) = %q", got)
	}
}

func TestRenderContact(t *testing.T) {
	out, err := newTestEngine(t).RenderContact(Head{Meta: models.Metadata{Title: "Contact"}})
	if err != nil {
		t.Fatal(err)
	}
	doc := string(out)
	for _, tag := range models.Interests {
		if !strings.Contains(doc, `value="`+tag+`"`) {
			t.Errorf("contact form missing interest %q", tag)
		}
	}
	if !strings.Contains(doc, `href="mailto:info@onlinelabs.nl"`) {
		t.Error("contact form should offer the direct email fallback")
	}
}

func TestStatic(t *testing.T) {
	if _, err := fs.Stat(Static(), "site.css"); err != nil {
		t.Errorf("site.css not embedded: %v", err)
	}
}
