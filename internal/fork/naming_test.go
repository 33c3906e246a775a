package fork

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitesmith/sitesmith/internal/model"
	"github.com/sitesmith/sitesmith/internal/store"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Portfolio", "acme-portfolio"},
		{"Acme Portfolio (Fork)", "acme-portfolio-fork"},
		{"Hello,   World!", "hello-world"},
		{"--already--dashed--", "already-dashed"},
		{"日本語", "site"},
		{"", "site"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}

func TestUniqueNameSlugNoCollision(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(store.NewMemory(), nil)

	name, slug, err := e.uniqueNameSlug(ctx, "Acme (Fork)")
	require.NoError(t, err)
	assert.Equal(t, "Acme (Fork)", name)
	assert.Equal(t, "acme-fork", slug)
}

func TestUniqueNameSlugCountsUp(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.CreateWebsite(ctx, &model.Website{ID: "w1", Name: "Acme (Fork)", Slug: "acme-fork"}))
	require.NoError(t, m.CreateWebsite(ctx, &model.Website{ID: "w2", Name: "Acme (Fork) 1", Slug: "acme-fork-1"}))
	e := NewEngine(m, nil)

	name, slug, err := e.uniqueNameSlug(ctx, "Acme (Fork)")
	require.NoError(t, err)
	assert.Equal(t, "Acme (Fork) 2", name)
	assert.Equal(t, "acme-fork-2", slug)
}

func TestUniqueNameSlugProbesSlugToo(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	// Different name, but the slug the fork would want is taken.
	require.NoError(t, m.CreateWebsite(ctx, &model.Website{ID: "w1", Name: "Something Else", Slug: "acme-fork"}))
	e := NewEngine(m, nil)

	name, slug, err := e.uniqueNameSlug(ctx, "Acme (Fork)")
	require.NoError(t, err)
	assert.Equal(t, "Acme (Fork) 1", name)
	assert.Equal(t, "acme-fork-1", slug)
}

func TestUniqueNameSlugTerminates(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.CreateWebsite(ctx, &model.Website{ID: "w0", Name: "Acme (Fork)", Slug: "acme-fork"}))
	for i := 1; i <= maxNameAttempts; i++ {
		w := &model.Website{
			ID:   fmt.Sprintf("w%d", i),
			Name: fmt.Sprintf("Acme (Fork) %d", i),
			Slug: fmt.Sprintf("acme-fork-%d", i),
		}
		require.NoError(t, m.CreateWebsite(ctx, w))
	}
	e := NewEngine(m, nil)

	name, slug, err := e.uniqueNameSlug(ctx, "Acme (Fork)")
	require.NoError(t, err)
	// The bounded probe is exhausted; the timestamp fallback still yields
	// a unique pair instead of looping.
	assert.NotEqual(t, "Acme (Fork)", name)
	assert.NotEmpty(t, slug)
	_, err = m.WebsiteBySlug(ctx, slug)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
