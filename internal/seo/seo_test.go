package seo

import (
	"fmt"
	"strings"
	"testing"
)

const rankMathHead = `<title>Fallback titel | OnlineLabs</title>
<meta name="description" content="Alles over lokale SEO &amp;#8211; van A tot Z"/>
<meta property="og:title" content="Lokale SEO in 2025 &#8211; de complete gids"/>
<meta property="og:image" content="https://cms.onlinelabs.nl/wp-content/uploads/seo.jpg"/>
<script type="application/ld+json" class="rank-math-schema">{"@context":"https://schema.org","@graph":[{"@type":"Organization","@id":"https://www.onlinelabs.nl/#organization"},{"@type":"FAQPage","mainEntity":[{"@type":"Question","name":"Wat is lokale SEO?","acceptedAnswer":{"@type":"Answer","text":"<p>Vindbaarheid in <strong>jouw regio</strong>.</p>"}},{"@type":"Question","name":"Hoe lang duurt het?","acceptedAnswer":{"@type":"Answer","text":"Meestal 3 &amp; 6 maanden."}}]}]}</script>`

func TestExtractSeoMeta(t *testing.T) {
	meta := ExtractSeoMeta(rankMathHead)

	if meta.Title != "Lokale SEO in 2025 – de complete gids" {
		t.Errorf("Title = %q, want og:title with decoded dash", meta.Title)
	}
	if meta.Description != "Alles over lokale SEO – van A tot Z" {
		t.Errorf("Description = %q, want double-encoded dash decoded", meta.Description)
	}
	if meta.OGImage != "https://cms.onlinelabs.nl/wp-content/uploads/seo.jpg" {
		t.Errorf("OGImage = %q", meta.OGImage)
	}
}

func TestExtractSeoMeta_Fallbacks(t *testing.T) {
	tests := []struct {
		name      string
		head      string
		wantTitle string
		wantDesc  string
		wantImage string
	}{
		{
			name:      "title element when og:title missing",
			head:      `<title>Contact &#8220;OnlineLabs&#8221;</title>`,
			wantTitle: "Contact “OnlineLabs”",
		},
		{
			name:     "no og:image",
			head:     `<meta property="og:title" content="Titel"/><meta name="description" content="Omschrijving"/>`,
			wantDesc: "Omschrijving", wantTitle: "Titel",
		},
		{
			name: "empty fragment",
			head: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := ExtractSeoMeta(tt.head)
			if meta.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", meta.Title, tt.wantTitle)
			}
			if meta.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", meta.Description, tt.wantDesc)
			}
			if meta.OGImage != tt.wantImage {
				t.Errorf("OGImage = %q, want %q", meta.OGImage, tt.wantImage)
			}
		})
	}
}

func TestExtractFaqs_GraphShape(t *testing.T) {
	faqs := ExtractFaqs(rankMathHead)
	if len(faqs) != 2 {
		t.Fatalf("Expected 2 FAQs, got %d", len(faqs))
	}
	if faqs[0].Question != "Wat is lokale SEO?" || faqs[1].Question != "Hoe lang duurt het?" {
		t.Errorf("FAQs out of source order: %+v", faqs)
	}
	if faqs[0].Answer != "Vindbaarheid in jouw regio." {
		t.Errorf("Answer tags not stripped: %q", faqs[0].Answer)
	}
	if !strings.Contains(faqs[0].AnswerHTML, "<strong>") {
		t.Errorf("AnswerHTML should keep source markup: %q", faqs[0].AnswerHTML)
	}
	if faqs[1].Answer != "Meestal 3 & 6 maanden." {
		t.Errorf("Answer entities not decoded: %q", faqs[1].Answer)
	}
}

func TestExtractFaqs_RoundTripN(t *testing.T) {
	for _, n := range []int{1, 3, 7} {
		t.Run(fmt.Sprintf("%d pairs", n), func(t *testing.T) {
			var items []string
			for i := 0; i < n; i++ {
				items = append(items, fmt.Sprintf(`{"@type":"Question","name":"Vraag %d","acceptedAnswer":{"@type":"Answer","text":"<b>Antwoord</b> %d"}}`, i, i))
			}
			head := `<script type="application/ld+json">{"@graph":[{"@type":"FAQPage","mainEntity":[` + strings.Join(items, ",") + `]}]}</script>`

			faqs := ExtractFaqs(head)
			if len(faqs) != n {
				t.Fatalf("Expected %d entries, got %d", n, len(faqs))
			}
			for i, f := range faqs {
				if f.Question != fmt.Sprintf("Vraag %d", i) {
					t.Errorf("faqs[%d].Question = %q", i, f.Question)
				}
				if f.Answer != fmt.Sprintf("Antwoord %d", i) {
					t.Errorf("faqs[%d].Answer = %q", i, f.Answer)
				}
			}
		})
	}
}

func TestExtractFaqs_Shapes(t *testing.T) {
	tests := []struct {
		name string
		head string
		want []string
	}{
		{
			name: "no script blocks",
			head: `<title>Geen schema</title><meta name="description" content="x"/>`,
			want: nil,
		},
		{
			name: "malformed block followed by valid block",
			head: `<script type="application/ld+json">{"@graph": [ broken</script>
<script type="application/ld+json">{"@graph":[{"@type":"FAQPage","mainEntity":[{"name":"Tweede blok?","acceptedAnswer":{"text":"Ja"}}]}]}</script>`,
			want: []string{"Tweede blok?"},
		},
		{
			name: "subjectOf on graph item",
			head: `<script type="application/ld+json">{"@graph":[{"@type":"BlogPosting","subjectOf":[{"@type":"FAQPage","mainEntity":[{"name":"Via subjectOf?","acceptedAnswer":{"text":"Ja"}}]}]}]}</script>`,
			want: []string{"Via subjectOf?"},
		},
		{
			name: "root is FAQPage",
			head: `<script type="application/ld+json">{"@context":"https://schema.org","@type":"FAQPage","mainEntity":[{"name":"Root?","acceptedAnswer":{"text":"Ja"}}]}</script>`,
			want: []string{"Root?"},
		},
		{
			name: "type as array",
			head: `<script type="application/ld+json">{"@graph":[{"@type":["WebPage","FAQPage"],"mainEntity":[{"name":"Array type?"}]}]}</script>`,
			want: []string{"Array type?"},
		},
		{
			name: "graph shape wins over subjectOf",
			head: `<script type="application/ld+json">{"@graph":[{"@type":"Article","subjectOf":{"@type":"FAQPage","mainEntity":[{"name":"Second choice"}]}},{"@type":"FAQPage","mainEntity":[{"name":"First choice"}]}]}</script>`,
			want: []string{"First choice"},
		},
		{
			name: "first matching block stops scanning",
			head: `<script type="application/ld+json">{"@type":"FAQPage","mainEntity":[{"name":"Blok een"}]}</script>
<script type="application/ld+json">{"@type":"FAQPage","mainEntity":[{"name":"Blok twee"}]}</script>`,
			want: []string{"Blok een"},
		},
		{
			name: "parses but no FAQ shape",
			head: `<script type="application/ld+json">{"@graph":[{"@type":"WebPage","mainEntity":{"@id":"#article"}}]}</script>`,
			want: nil,
		},
		{
			name: "empty mainEntity falls through to next block",
			head: `<script type="application/ld+json">{"@type":"FAQPage","mainEntity":[]}</script>
<script type="application/ld+json">[{"@type":"WebSite"},{"@type":"FAQPage","mainEntity":[{"name":"In array root"}]}]</script>`,
			want: []string{"In array root"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			faqs := ExtractFaqs(tt.head)
			if len(faqs) != len(tt.want) {
				t.Fatalf("Expected %d FAQs, got %d: %+v", len(tt.want), len(faqs), faqs)
			}
			for i, q := range tt.want {
				if faqs[i].Question != q {
					t.Errorf("faqs[%d].Question = %q, want %q", i, faqs[i].Question, q)
				}
			}
		})
	}
}

func TestExtractFaqs_MissingAnswerIsEmpty(t *testing.T) {
	faqs := ExtractFaqs(`<script type="application/ld+json">{"@type":"FAQPage","mainEntity":[{"name":"Zonder antwoord"}]}</script>`)
	if len(faqs) != 1 {
		t.Fatalf("Expected 1 FAQ, got %d", len(faqs))
	}
	if faqs[0].AnswerHTML != "" || faqs[0].Answer != "" {
		t.Errorf("Expected empty answer, got %+v", faqs[0])
	}
}
