package sitemap

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/onlinelabs/website/internal/content"
	"github.com/onlinelabs/website/internal/models"
	"github.com/onlinelabs/website/internal/util"
)

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category,omitempty"`
	GUID        string   `xml:"guid"`
	PubDate     string   `xml:"pubDate"`
}

// Feed describes the blog channel.
type Feed struct {
	Title       string
	SiteURL     string
	Description string
}

// RenderFeed produces an RSS 2.0 document for the given posts. buildDate is
// the channel's lastBuildDate.
func RenderFeed(feed Feed, posts []models.Post, buildDate time.Time) (string, error) {
	ch := rssChannel{
		Title:         feed.Title,
		Link:          util.JoinURL(feed.SiteURL, "/blog"),
		Description:   feed.Description,
		Language:      "nl-NL",
		LastBuildDate: buildDate.UTC().Format(time.RFC1123Z),
	}
	for _, p := range posts {
		link := util.Canonical(feed.SiteURL, "/blog/"+p.Slug)
		ch.Items = append(ch.Items, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: content.PlainText(p.ExcerptHTML),
			Categories:  p.Categories,
			GUID:        link,
			PubDate:     p.PublishedAt.UTC().Format(time.RFC1123Z),
		})
	}

	data, err := xml.MarshalIndent(rssDoc{Version: "2.0", Channel: ch}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal feed: %w", err)
	}
	return xml.Header + string(data) + "\n", nil
}
