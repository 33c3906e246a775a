package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitesmith/sitesmith/internal/model"
)

func seedWebsite(t *testing.T, m *Memory, id, slug string) *model.Website {
	t.Helper()
	w := &model.Website{ID: id, OwnerID: "owner-1", Name: "Site " + id, Slug: slug}
	require.NoError(t, m.CreateWebsite(context.Background(), w))
	return w
}

func TestMemoryWebsiteCRUD(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	w := seedWebsite(t, m, "w1", "acme")

	got, err := m.WebsiteByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "acme", got.Slug)

	got, err = m.WebsiteBySlug(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "w1", got.ID)

	got, err = m.FirstWebsiteByName(ctx, w.Name)
	require.NoError(t, err)
	assert.Equal(t, "w1", got.ID)

	w.Published = true
	require.NoError(t, m.UpdateWebsite(ctx, w))
	got, _ = m.WebsiteByID(ctx, "w1")
	assert.True(t, got.Published)

	_, err = m.WebsiteByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRejectsDuplicateSlug(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	seedWebsite(t, m, "w1", "acme")

	err := m.CreateWebsite(ctx, &model.Website{ID: "w2", Slug: "acme"})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestMemoryIncrementForkCount(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	seedWebsite(t, m, "w1", "acme")

	require.NoError(t, m.IncrementForkCount(ctx, "w1"))
	require.NoError(t, m.IncrementForkCount(ctx, "w1"))

	got, err := m.WebsiteByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.ForkCount)
}

func TestMemoryPageByPathNormalizes(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	seedWebsite(t, m, "w1", "acme")
	require.NoError(t, m.CreatePage(ctx, &model.Page{ID: "p1", WebsiteID: "w1", Path: "about"}))

	for _, path := range []string{"about", "/about", "/about/"} {
		got, err := m.PageByPath(ctx, "w1", path)
		require.NoError(t, err, path)
		assert.Equal(t, "p1", got.ID)
	}

	_, err := m.PageByPath(ctx, "w1", "/missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryComponentsByPageInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	for _, id := range []string{"c3", "c1", "c2"} {
		require.NoError(t, m.CreateComponent(ctx, &model.Component{ID: id, PageID: "p1", Type: "text"}))
	}

	got, err := m.ComponentsByPage(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "c3", got[0].ID)
	assert.Equal(t, "c1", got[1].ID)
	assert.Equal(t, "c2", got[2].ID)
}

func TestMemoryComponentPropertiesIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	c := &model.Component{ID: "c1", PageID: "p1", Type: "text",
		Properties: map[string]any{"text": "original"}}
	require.NoError(t, m.CreateComponent(ctx, c))

	// Mutating the caller's map must not leak into the stored record.
	c.Properties["text"] = "mutated"

	got, err := m.ComponentByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "original", got.Properties["text"])

	// And mutating a read result must not either.
	got.Properties["text"] = "mutated again"
	got2, err := m.ComponentByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "original", got2.Properties["text"])
}

func TestMemoryDeleteWebsiteCascades(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	seedWebsite(t, m, "w1", "acme")
	require.NoError(t, m.CreatePage(ctx, &model.Page{ID: "p1", WebsiteID: "w1", Path: "/"}))
	require.NoError(t, m.CreateComponent(ctx, &model.Component{ID: "c1", PageID: "p1", Type: "text"}))

	require.NoError(t, m.DeleteWebsite(ctx, "w1"))

	_, err := m.PageByID(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.ComponentByID(ctx, "c1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDeletePageCascades(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.CreatePage(ctx, &model.Page{ID: "p1", WebsiteID: "w1", Path: "/"}))
	require.NoError(t, m.CreateComponent(ctx, &model.Component{ID: "c1", PageID: "p1", Type: "text"}))

	require.NoError(t, m.DeletePage(ctx, "p1"))

	_, err := m.ComponentByID(ctx, "c1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDeleteComponents(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, m.CreateComponent(ctx, &model.Component{ID: id, PageID: "p1", Type: "text"}))
	}

	require.NoError(t, m.DeleteComponents(ctx, []string{"a", "c", "never-existed"}))

	got, err := m.ComponentsByPage(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestMemoryPagesByWebsiteHomeFirst(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.CreatePage(ctx, &model.Page{ID: "p2", WebsiteID: "w1", Path: "/about"}))
	require.NoError(t, m.CreatePage(ctx, &model.Page{ID: "p1", WebsiteID: "w1", Path: "/", IsHomePage: true}))

	pages, err := m.PagesByWebsite(ctx, "w1")
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "p1", pages[0].ID)
}
