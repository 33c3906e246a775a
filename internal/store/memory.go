package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sitesmith/sitesmith/internal/model"
)

// Memory is a mutex-guarded in-memory Store. It backs tests and the dev
// server; semantics (cascade deletes, not-found errors, path normalization)
// match the PostgreSQL store.
type Memory struct {
	mu         sync.RWMutex
	websites   map[string]model.Website
	pages      map[string]model.Page
	components map[string]model.Component
	seq        map[string]int // component id -> insertion sequence
	nextSeq    int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		websites:   make(map[string]model.Website),
		pages:      make(map[string]model.Page),
		components: make(map[string]model.Component),
		seq:        make(map[string]int),
	}
}

var _ Store = (*Memory)(nil)

func (m *Memory) CreateWebsite(_ context.Context, w *model.Website) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.websites {
		if existing.Slug == w.Slug {
			return fmt.Errorf("slug %q: %w", w.Slug, ErrSlugTaken)
		}
	}
	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now
	m.websites[w.ID] = *w
	return nil
}

func (m *Memory) WebsiteByID(_ context.Context, id string) (*model.Website, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.websites[id]
	if !ok {
		return nil, fmt.Errorf("website %s: %w", id, ErrNotFound)
	}
	return &w, nil
}

func (m *Memory) WebsiteBySlug(_ context.Context, slug string) (*model.Website, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, w := range m.websites {
		if w.Slug == slug {
			w := w
			return &w, nil
		}
	}
	return nil, fmt.Errorf("website slug %s: %w", slug, ErrNotFound)
}

func (m *Memory) FirstWebsiteByName(_ context.Context, name string) (*model.Website, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, w := range m.websites {
		if w.Name == name {
			w := w
			return &w, nil
		}
	}
	return nil, fmt.Errorf("website name %q: %w", name, ErrNotFound)
}

func (m *Memory) UpdateWebsite(_ context.Context, w *model.Website) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.websites[w.ID]; !ok {
		return fmt.Errorf("website %s: %w", w.ID, ErrNotFound)
	}
	w.UpdatedAt = time.Now()
	m.websites[w.ID] = *w
	return nil
}

func (m *Memory) DeleteWebsite(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.websites[id]; !ok {
		return fmt.Errorf("website %s: %w", id, ErrNotFound)
	}
	delete(m.websites, id)
	for pid, p := range m.pages {
		if p.WebsiteID == id {
			delete(m.pages, pid)
			m.deletePageComponentsLocked(pid)
		}
	}
	return nil
}

func (m *Memory) IncrementForkCount(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.websites[id]
	if !ok {
		return fmt.Errorf("website %s: %w", id, ErrNotFound)
	}
	w.ForkCount++
	w.UpdatedAt = time.Now()
	m.websites[id] = w
	return nil
}

func (m *Memory) CreatePage(_ context.Context, p *model.Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.pages[p.ID] = *p
	return nil
}

func (m *Memory) PageByID(_ context.Context, id string) (*model.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pages[id]
	if !ok {
		return nil, fmt.Errorf("page %s: %w", id, ErrNotFound)
	}
	return &p, nil
}

func (m *Memory) PagesByWebsite(_ context.Context, websiteID string) ([]model.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Page
	for _, p := range m.pages {
		if p.WebsiteID == websiteID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsHomePage != out[j].IsHomePage {
			return out[i].IsHomePage
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) PageByPath(_ context.Context, websiteID, path string) (*model.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := model.NormalizePath(path)
	for _, p := range m.pages {
		if p.WebsiteID == websiteID && p.NormalizedPath() == want {
			p := p
			return &p, nil
		}
	}
	return nil, fmt.Errorf("page %s%s: %w", websiteID, want, ErrNotFound)
}

func (m *Memory) UpdatePage(_ context.Context, p *model.Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pages[p.ID]; !ok {
		return fmt.Errorf("page %s: %w", p.ID, ErrNotFound)
	}
	p.UpdatedAt = time.Now()
	m.pages[p.ID] = *p
	return nil
}

func (m *Memory) DeletePage(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pages[id]; !ok {
		return fmt.Errorf("page %s: %w", id, ErrNotFound)
	}
	delete(m.pages, id)
	m.deletePageComponentsLocked(id)
	return nil
}

func (m *Memory) deletePageComponentsLocked(pageID string) {
	for cid, c := range m.components {
		if c.PageID == pageID {
			delete(m.components, cid)
			delete(m.seq, cid)
		}
	}
}

func (m *Memory) CreateComponent(_ context.Context, c *model.Component) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	rec := *c
	rec.Properties = c.CloneProperties()
	m.components[c.ID] = rec
	m.nextSeq++
	m.seq[c.ID] = m.nextSeq
	return nil
}

func (m *Memory) ComponentByID(_ context.Context, id string) (*model.Component, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.components[id]
	if !ok {
		return nil, fmt.Errorf("component %s: %w", id, ErrNotFound)
	}
	c.Properties = c.CloneProperties()
	return &c, nil
}

func (m *Memory) ComponentsByPage(_ context.Context, pageID string) ([]model.Component, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Component, 0)
	for _, c := range m.components {
		if c.PageID == pageID {
			c.Properties = c.CloneProperties()
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return m.seq[out[i].ID] < m.seq[out[j].ID]
	})
	return out, nil
}

func (m *Memory) UpdateComponent(_ context.Context, c *model.Component) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.components[c.ID]; !ok {
		return fmt.Errorf("component %s: %w", c.ID, ErrNotFound)
	}
	c.UpdatedAt = time.Now()
	rec := *c
	rec.Properties = c.CloneProperties()
	m.components[c.ID] = rec
	return nil
}

func (m *Memory) DeleteComponents(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.components, id)
		delete(m.seq, id)
	}
	return nil
}
