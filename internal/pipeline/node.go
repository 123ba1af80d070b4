package pipeline

import (
	"context"
	"fmt"

	"github.com/onlinelabs/website/internal/composer"
	"github.com/onlinelabs/website/internal/content"
	"github.com/onlinelabs/website/internal/models"
	"github.com/onlinelabs/website/internal/seo"
)

type NodeLoader struct {
	nodes NodeSource
	site  composer.Site
}

func NewNodeLoader(nodes NodeSource, site composer.Site) *NodeLoader {
	return &NodeLoader{nodes: nodes, site: site}
}

// Render composes a service, case or training detail page.
func (l *NodeLoader) Render(ctx context.Context, kind models.NodeKind, slug string) (*models.RenderedNode, error) {
	node, err := l.nodes.FetchNodeBySlug(ctx, kind, slug)
	if err != nil {
		return nil, err
	}

	var meta models.SeoMeta
	if node.SEOHead != "" {
		meta = seo.ExtractSeoMeta(node.SEOHead)
	}
	body, toc := content.AnnotateHeadings(node.ContentHTML)

	rendered := composer.ComposeNode(l.site, node, meta, body, toc)
	return &rendered, nil
}

func (l *NodeLoader) List(ctx context.Context, kind models.NodeKind) ([]models.ContentNode, error) {
	nodes, err := l.nodes.ListNodes(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	return nodes, nil
}
