// Package export writes the rendered static HTML of a published website to a
// destination: a local directory for self-hosting, or an S3 bucket for CDN
// fronting. Only published pages are exported; the output is exactly what the
// public serving path would produce.
package export

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sitesmith/sitesmith/internal/materialize"
	"github.com/sitesmith/sitesmith/internal/model"
	"github.com/sitesmith/sitesmith/internal/publish"
	"github.com/sitesmith/sitesmith/internal/store"
)

// Uploader stores one rendered file under a key.
type Uploader interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// Exporter renders and uploads a website's published pages.
type Exporter struct {
	store store.Store
	mat   *materialize.Materializer
	up    Uploader
	log   *zap.Logger
}

func New(st store.Store, mat *materialize.Materializer, up Uploader, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{store: st, mat: mat, up: up, log: log}
}

// ExportWebsite renders every published page of the website and uploads each
// one. It returns the number of pages written.
func (e *Exporter) ExportWebsite(ctx context.Context, websiteID string) (int, error) {
	site, err := e.store.WebsiteByID(ctx, websiteID)
	if err != nil {
		return 0, err
	}
	pages, err := e.store.PagesByWebsite(ctx, site.ID)
	if err != nil {
		return 0, err
	}
	if !publish.Servable(site, pages) {
		return 0, fmt.Errorf("website %q is not published", site.Slug)
	}

	written := 0
	for i := range pages {
		p := &pages[i]
		if !p.Published {
			continue
		}
		components, err := e.store.ComponentsByPage(ctx, p.ID)
		if err != nil {
			return written, fmt.Errorf("load components for page %s: %w", p.ID, err)
		}
		html, err := e.mat.RenderPage(site, p, components, materialize.Options{})
		if err != nil {
			return written, fmt.Errorf("render page %s: %w", p.ID, err)
		}
		key := pageKey(p)
		if err := e.up.Put(ctx, key, []byte(html), "text/html; charset=utf-8"); err != nil {
			return written, fmt.Errorf("upload %s: %w", key, err)
		}
		e.log.Info("exported page",
			zap.String("website", site.Slug),
			zap.String("path", p.NormalizedPath()),
			zap.String("key", key))
		written++
	}
	return written, nil
}

// pageKey maps a page path to an output file name. The home page becomes
// index.html; /about becomes about.html; /docs/intro becomes docs/intro.html.
func pageKey(p *model.Page) string {
	if p.IsHomePage {
		return "index.html"
	}
	path := p.NormalizedPath()
	if path == "/" {
		return "index.html"
	}
	return path[1:] + ".html"
}
