package seo

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/onlinelabs/website/internal/content"
	"github.com/onlinelabs/website/internal/models"
)

const ldJSONSelector = `script[type="application/ld+json"]`

// ExtractFaqs returns the question/answer pairs of the first FAQPage found in
// the JSON-LD blocks of head. Blocks that fail to parse are skipped.
func ExtractFaqs(head string) []models.FaqEntry {
	if strings.TrimSpace(head) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(head))
	if err != nil {
		slog.Warn("Failed to parse SEO head fragment", "error", err)
		return nil
	}

	var faqs []models.FaqEntry
	doc.Find(ldJSONSelector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}
		var parsed any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			slog.Debug("Skipping malformed JSON-LD block", "index", i, "error", err)
			return true
		}
		faqs = faqsFromRoot(parsed)
		return len(faqs) == 0
	})
	return faqs
}

func faqsFromRoot(parsed any) []models.FaqEntry {
	switch v := parsed.(type) {
	case map[string]any:
		return faqsFromObject(v)
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				if faqs := faqsFromObject(m); len(faqs) > 0 {
					return faqs
				}
			}
		}
	}
	return nil
}

// faqsFromObject checks, in order: a FAQPage inside @graph, a FAQPage in the
// subjectOf of a @graph item, and the object itself being a FAQPage.
func faqsFromObject(root ldObject) []models.FaqEntry {
	graph := root.objects("@graph")

	for _, item := range graph {
		if item.hasType("FAQPage") {
			if faqs := mapMainEntity(item); len(faqs) > 0 {
				return faqs
			}
		}
	}

	for _, item := range graph {
		for _, subject := range item.objects("subjectOf") {
			if subject.hasType("FAQPage") {
				if faqs := mapMainEntity(subject); len(faqs) > 0 {
					return faqs
				}
			}
		}
	}

	if root.hasType("FAQPage") {
		return mapMainEntity(root)
	}
	return nil
}

func mapMainEntity(page ldObject) []models.FaqEntry {
	questions := page.objects("mainEntity")
	faqs := make([]models.FaqEntry, 0, len(questions))
	for _, q := range questions {
		name, ok := q.str("name")
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		var answerHTML string
		if answers := q.objects("acceptedAnswer"); len(answers) > 0 {
			answerHTML, _ = answers[0].str("text")
		}
		faqs = append(faqs, models.FaqEntry{
			Question:   decodeEntities(strings.TrimSpace(name)),
			AnswerHTML: answerHTML,
			Answer:     content.PlainText(answerHTML),
		})
	}
	return faqs
}
