// Package content rewrites CMS post bodies and derives plain text from them.
package content

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/onlinelabs/website/internal/models"
)

var (
	headingPattern = regexp.MustCompile(`(?is)<h([23])\b([^>]*)>(.*?)</h[23]\s*>`)
	idAttrPattern  = regexp.MustCompile(`(?i)\s+id\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
)

// AnnotateHeadings gives every h2 and h3 element a stable anchor id and
// returns the h2 table of contents in document order. Inner markup and other
// attributes are left untouched. Duplicate ids get -2, -3, ... suffixes.
func AnnotateHeadings(body string) (string, []models.HeadingEntry) {
	var (
		toc   []models.HeadingEntry
		seen  = make(map[string]int)
		index int
	)

	annotated := headingPattern.ReplaceAllStringFunc(body, func(match string) string {
		parts := headingPattern.FindStringSubmatch(match)
		level, attrs, inner := parts[1], parts[2], parts[3]
		index++

		text := PlainText(inner)
		id := Slugify(text)
		if id == "" {
			id = "sectie-" + strconv.Itoa(index)
		}
		id = uniqueID(seen, id)

		if level == "2" && text != "" {
			toc = append(toc, models.HeadingEntry{Level: 2, Text: text, ID: id})
		}

		attrs = idAttrPattern.ReplaceAllString(attrs, "")
		var b strings.Builder
		b.Grow(len(match) + len(id) + 6)
		b.WriteString("<h")
		b.WriteString(level)
		b.WriteString(` id="`)
		b.WriteString(id)
		b.WriteByte('"')
		b.WriteString(attrs)
		b.WriteByte('>')
		b.WriteString(inner)
		b.WriteString("</h")
		b.WriteString(level)
		b.WriteByte('>')
		return b.String()
	})

	return annotated, toc
}

func uniqueID(seen map[string]int, id string) string {
	n := seen[id]
	seen[id] = n + 1
	if n == 0 {
		return id
	}
	candidate := id + "-" + strconv.Itoa(n+1)
	for seen[candidate] > 0 {
		n++
		candidate = id + "-" + strconv.Itoa(n+1)
	}
	seen[candidate] = 1
	return candidate
}
