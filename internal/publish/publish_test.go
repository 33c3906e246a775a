package publish

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitesmith/sitesmith/internal/model"
	"github.com/sitesmith/sitesmith/internal/store"
)

type denyingLimiter struct{}

func (denyingLimiter) CheckPublish(context.Context, string) error {
	return &LimitError{CurrentUsage: 3, Limit: 3, Plan: "free"}
}

func seed(t *testing.T) *store.Memory {
	t.Helper()
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.CreateWebsite(ctx, &model.Website{ID: "w1", OwnerID: "owner-1", Name: "Acme", Slug: "acme"}))
	require.NoError(t, m.CreatePage(ctx, &model.Page{ID: "p1", WebsiteID: "w1", Path: "/", IsHomePage: true}))
	return m
}

func TestPublishWebsite(t *testing.T) {
	ctx := context.Background()
	m := seed(t)
	svc := NewService(m, nil, nil)

	require.NoError(t, svc.PublishWebsite(ctx, "owner-1", "w1"))

	w, err := m.WebsiteByID(ctx, "w1")
	require.NoError(t, err)
	assert.True(t, w.Published)
}

func TestPublishWebsiteLimitErrorRecognizable(t *testing.T) {
	ctx := context.Background()
	svc := NewService(seed(t), denyingLimiter{}, nil)

	err := svc.PublishWebsite(ctx, "owner-1", "w1")
	require.Error(t, err)

	var limitErr *LimitError
	require.True(t, errors.As(err, &limitErr), "limiter verdict must stay recognizable")
	assert.Equal(t, 3, limitErr.Limit)
	assert.Equal(t, "free", limitErr.Plan)
	assert.Contains(t, limitErr.Error(), "free")
}

func TestUnpublishIgnoresLimiter(t *testing.T) {
	ctx := context.Background()
	m := seed(t)
	svc := NewService(m, denyingLimiter{}, nil)

	// Unpublish must always be possible, even over the limit.
	require.NoError(t, svc.UnpublishWebsite(ctx, "owner-1", "w1"))
}

func TestPublishPage(t *testing.T) {
	ctx := context.Background()
	m := seed(t)
	svc := NewService(m, nil, nil)

	require.NoError(t, svc.PublishPage(ctx, "owner-1", "p1"))
	p, err := m.PageByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.Published)

	require.NoError(t, svc.UnpublishPage(ctx, "owner-1", "p1"))
	p, err = m.PageByID(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, p.Published)
}

func TestShareAsTemplate(t *testing.T) {
	ctx := context.Background()
	m := seed(t)
	svc := NewService(m, nil, nil)

	require.NoError(t, svc.ShareAsTemplate(ctx, "owner-1", "w1", true))
	w, _ := m.WebsiteByID(ctx, "w1")
	assert.True(t, w.IsTemplate)

	require.NoError(t, svc.ShareAsTemplate(ctx, "owner-1", "w1", false))
	w, _ = m.WebsiteByID(ctx, "w1")
	assert.False(t, w.IsTemplate)
}

func TestOperationsRequireActor(t *testing.T) {
	ctx := context.Background()
	svc := NewService(seed(t), nil, nil)

	assert.ErrorIs(t, svc.PublishWebsite(ctx, "", "w1"), ErrUnauthorized)
	assert.ErrorIs(t, svc.UnpublishWebsite(ctx, "", "w1"), ErrUnauthorized)
	assert.ErrorIs(t, svc.PublishPage(ctx, "", "p1"), ErrUnauthorized)
	assert.ErrorIs(t, svc.UnpublishPage(ctx, "", "p1"), ErrUnauthorized)
	assert.ErrorIs(t, svc.ShareAsTemplate(ctx, "", "w1", true), ErrUnauthorized)
}

func TestServable(t *testing.T) {
	home := model.Page{ID: "p1", IsHomePage: true, Published: true}
	other := model.Page{ID: "p2", Published: true}

	tests := []struct {
		name  string
		site  model.Website
		pages []model.Page
		want  bool
	}{
		{"published with published home", model.Website{Published: true}, []model.Page{home, other}, true},
		{"unpublished site", model.Website{Published: false}, []model.Page{home}, false},
		{"no home page", model.Website{Published: true}, []model.Page{other}, false},
		{"home unpublished", model.Website{Published: true}, []model.Page{{IsHomePage: true}}, false},
		{"no pages", model.Website{Published: true}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Servable(&tt.site, tt.pages))
		})
	}
}
