// Package store defines the persistence contract the builder core consumes.
// Implementations live alongside: an in-memory store for tests and the dev
// server, and a PostgreSQL store under store/postgres.
package store

import (
	"context"
	"errors"

	"github.com/sitesmith/sitesmith/internal/model"
)

// ErrNotFound is returned when a website, page, or component does not exist.
var ErrNotFound = errors.New("not found")

// ErrSlugTaken is returned when creating a website whose slug already exists.
var ErrSlugTaken = errors.New("slug already taken")

// Store is the persistence contract for website/page/component records.
// Deletes cascade: deleting a website removes its pages and their components,
// deleting a page removes its components.
type Store interface {
	WebsiteStore
	PageStore
	ComponentStore
}

// WebsiteStore covers top-level website records.
type WebsiteStore interface {
	CreateWebsite(ctx context.Context, w *model.Website) error
	WebsiteByID(ctx context.Context, id string) (*model.Website, error)
	WebsiteBySlug(ctx context.Context, slug string) (*model.Website, error)
	// FirstWebsiteByName returns any website with the exact name, or
	// ErrNotFound. Fork uses it to probe name collisions.
	FirstWebsiteByName(ctx context.Context, name string) (*model.Website, error)
	UpdateWebsite(ctx context.Context, w *model.Website) error
	DeleteWebsite(ctx context.Context, id string) error
	// IncrementForkCount bumps the fork counter by one. The counter is
	// monotonic but not required to be strictly consistent under
	// concurrent forks.
	IncrementForkCount(ctx context.Context, id string) error
}

// PageStore covers page records.
type PageStore interface {
	CreatePage(ctx context.Context, p *model.Page) error
	PageByID(ctx context.Context, id string) (*model.Page, error)
	PagesByWebsite(ctx context.Context, websiteID string) ([]model.Page, error)
	// PageByPath resolves a page by its normalized path within a website.
	PageByPath(ctx context.Context, websiteID, path string) (*model.Page, error)
	UpdatePage(ctx context.Context, p *model.Page) error
	DeletePage(ctx context.Context, id string) error
}

// ComponentStore covers the flat component lists pages own.
type ComponentStore interface {
	CreateComponent(ctx context.Context, c *model.Component) error
	ComponentByID(ctx context.Context, id string) (*model.Component, error)
	// ComponentsByPage returns the page's flat component list in creation
	// order. Sibling ordering by position is the tree layer's concern.
	ComponentsByPage(ctx context.Context, pageID string) ([]model.Component, error)
	UpdateComponent(ctx context.Context, c *model.Component) error
	DeleteComponents(ctx context.Context, ids []string) error
}
