package fork

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitesmith/sitesmith/internal/model"
	"github.com/sitesmith/sitesmith/internal/store"
	"github.com/sitesmith/sitesmith/internal/tree"
)

func strptr(s string) *string { return &s }

// seedTemplate builds a published template with one home page and a small
// component tree carrying an internal link.
func seedTemplate(t *testing.T, m *store.Memory) *model.Website {
	t.Helper()
	ctx := context.Background()

	w := &model.Website{
		ID: "tpl-1", OwnerID: "owner-1", Name: "Acme", Slug: "acme",
		Published: true, IsTemplate: true,
	}
	require.NoError(t, m.CreateWebsite(ctx, w))
	require.NoError(t, m.CreatePage(ctx, &model.Page{
		ID: "page-1", WebsiteID: "tpl-1", Title: "Home", Path: "/", IsHomePage: true, Published: true,
	}))
	require.NoError(t, m.CreatePage(ctx, &model.Page{
		ID: "page-2", WebsiteID: "tpl-1", Title: "About", Path: "/about", Published: true,
	}))

	require.NoError(t, m.CreateComponent(ctx, &model.Component{
		ID: "c-root", PageID: "page-1", Type: "section", Position: 0,
	}))
	require.NoError(t, m.CreateComponent(ctx, &model.Component{
		ID: "c-btn", PageID: "page-1", Type: "button", ParentID: strptr("c-root"), Position: 0,
		Properties: map[string]any{"text": "About us", "url": "/sites/acme/about"},
	}))
	return w
}

func TestForkCopiesEverything(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	seedTemplate(t, m)
	e := NewEngine(m, nil)

	forked, err := e.Fork(ctx, "tpl-1", "owner-2")
	require.NoError(t, err)

	assert.Equal(t, "owner-2", forked.OwnerID)
	assert.Equal(t, "Acme (Fork)", forked.Name)
	assert.Equal(t, "acme-fork", forked.Slug)
	assert.False(t, forked.Published, "forks start unpublished")
	assert.False(t, forked.IsTemplate, "forks are never templates themselves")

	pages, err := m.PagesByWebsite(ctx, forked.ID)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	for _, p := range pages {
		assert.False(t, p.Published, "copied pages start unpublished")
		assert.NotEqual(t, "page-1", p.ID)
		assert.NotEqual(t, "page-2", p.ID)
	}

	source, err := m.WebsiteByID(ctx, "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, 1, source.ForkCount)
}

func TestForkRemapsComponentIDs(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	seedTemplate(t, m)
	e := NewEngine(m, nil)

	forked, err := e.Fork(ctx, "tpl-1", "owner-2")
	require.NoError(t, err)

	home, err := m.PageByPath(ctx, forked.ID, "/")
	require.NoError(t, err)
	components, err := m.ComponentsByPage(ctx, home.ID)
	require.NoError(t, err)
	require.Len(t, components, 2)

	tr, err := tree.Build(components, tree.Strict)
	require.NoError(t, err)
	require.Len(t, tr.Roots(), 1)
	require.Len(t, tr.Roots()[0].Children, 1)

	child := tr.Roots()[0].Children[0].Component
	assert.NotEqual(t, "c-btn", child.ID, "ids must be fresh")
	assert.Equal(t, tr.Roots()[0].Component.ID, *child.ParentID, "parent remapped to the new id")
}

func TestForkRewritesInternalURLs(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	seedTemplate(t, m)
	e := NewEngine(m, nil)

	forked, err := e.Fork(ctx, "tpl-1", "owner-2")
	require.NoError(t, err)

	home, err := m.PageByPath(ctx, forked.ID, "/")
	require.NoError(t, err)
	components, err := m.ComponentsByPage(ctx, home.ID)
	require.NoError(t, err)

	var buttonURL string
	for _, c := range components {
		if c.Type == "button" {
			buttonURL, _ = c.Properties["url"].(string)
		}
	}
	assert.Equal(t, "/sites/acme-fork/about", buttonURL)
}

func TestForkNameCollisions(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	seedTemplate(t, m)
	e := NewEngine(m, nil)

	first, err := e.Fork(ctx, "tpl-1", "owner-2")
	require.NoError(t, err)
	assert.Equal(t, "Acme (Fork)", first.Name)

	second, err := e.Fork(ctx, "tpl-1", "owner-3")
	require.NoError(t, err)
	assert.Equal(t, "Acme (Fork) 1", second.Name)
	assert.Equal(t, "acme-fork-1", second.Slug)

	third, err := e.Fork(ctx, "tpl-1", "owner-4")
	require.NoError(t, err)
	assert.Equal(t, "Acme (Fork) 2", third.Name)
}

func TestForkRejectsNonTemplate(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.CreateWebsite(ctx, &model.Website{
		ID: "w1", Name: "Plain", Slug: "plain", Published: true, IsTemplate: false,
	}))
	e := NewEngine(m, nil)

	_, err := e.Fork(ctx, "w1", "owner-2")
	assert.ErrorIs(t, err, ErrNotTemplate)
}

func TestForkRejectsUnpublishedTemplate(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.CreateWebsite(ctx, &model.Website{
		ID: "w1", Name: "Draft", Slug: "draft", Published: false, IsTemplate: true,
	}))
	e := NewEngine(m, nil)

	_, err := e.Fork(ctx, "w1", "owner-2")
	assert.ErrorIs(t, err, ErrNotTemplate)
}

func TestForkRejectsEmptyTemplate(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.CreateWebsite(ctx, &model.Website{
		ID: "w1", Name: "Empty", Slug: "empty", Published: true, IsTemplate: true,
	}))
	e := NewEngine(m, nil)

	_, err := e.Fork(ctx, "w1", "owner-2")
	assert.ErrorIs(t, err, ErrNoPages)
}

func TestForkRequiresActor(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	seedTemplate(t, m)
	e := NewEngine(m, nil)

	_, err := e.Fork(ctx, "tpl-1", "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestForkSanitizesCorruptSource(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	seedTemplate(t, m)
	// A component whose parent does not exist in the page.
	require.NoError(t, m.CreateComponent(ctx, &model.Component{
		ID: "c-orphan", PageID: "page-1", Type: "text", ParentID: strptr("ghost"), Position: 5,
		Properties: map[string]any{"text": "orphaned"},
	}))
	e := NewEngine(m, nil)

	forked, err := e.Fork(ctx, "tpl-1", "owner-2")
	require.NoError(t, err, "corrupt source data must not fail the fork")

	home, err := m.PageByPath(ctx, forked.ID, "/")
	require.NoError(t, err)
	components, err := m.ComponentsByPage(ctx, home.ID)
	require.NoError(t, err)
	assert.Len(t, components, 3, "the orphan is re-parented and copied, not dropped")
}

// failingStore injects a write failure after a number of component creates.
type failingStore struct {
	*store.Memory
	failAfter int
	creates   int
}

var errInjected = errors.New("injected write failure")

func (f *failingStore) CreateComponent(ctx context.Context, c *model.Component) error {
	f.creates++
	if f.creates > f.failAfter {
		return errInjected
	}
	return f.Memory.CreateComponent(ctx, c)
}

func TestForkRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	seedTemplate(t, m)

	// The home page has two components; let the first copy succeed so the
	// rollback has something to clean up.
	fs := &failingStore{Memory: m, failAfter: 1}
	e := NewEngine(fs, nil)

	_, err := e.Fork(ctx, "tpl-1", "owner-2")
	require.ErrorIs(t, err, errInjected)

	// No partially forked website survives.
	_, err = m.WebsiteBySlug(ctx, "acme-fork")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The source fork counter did not move.
	source, err := m.WebsiteByID(ctx, "tpl-1")
	require.NoError(t, err)
	assert.Zero(t, source.ForkCount)
}
