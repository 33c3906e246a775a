// Package publish flips websites and pages live, gated by an external plan
// limiter. Limit violations carry usage details and are distinguishable from
// generic failures so callers can surface an upgrade path instead of a
// generic error.
package publish

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sitesmith/sitesmith/internal/model"
	"github.com/sitesmith/sitesmith/internal/store"
)

// ErrUnauthorized is returned for any write without an acting user.
var ErrUnauthorized = errors.New("unauthorized")

// LimitError reports a plan limit rejection from the limiter.
type LimitError struct {
	CurrentUsage int
	Limit        int
	Plan         string
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("plan limit reached: %d of %d published sites on plan %q", e.CurrentUsage, e.Limit, e.Plan)
}

// PlanLimiter decides whether an owner may publish. Implementations are
// external (billing); the core only propagates their verdict.
type PlanLimiter interface {
	// CheckPublish returns nil to allow publishing, a *LimitError to
	// reject for plan reasons, or another error for infrastructure
	// failures.
	CheckPublish(ctx context.Context, ownerID string) error
}

// Unlimited allows every publish. Used by tests and the dev server.
type Unlimited struct{}

// CheckPublish implements PlanLimiter.
func (Unlimited) CheckPublish(context.Context, string) error { return nil }

// Service implements the publish operations.
type Service struct {
	store   store.Store
	limiter PlanLimiter
	log     *zap.Logger
}

// NewService builds the publish service. limiter and log may be nil.
func NewService(st store.Store, limiter PlanLimiter, log *zap.Logger) *Service {
	if limiter == nil {
		limiter = Unlimited{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, limiter: limiter, log: log}
}

// PublishWebsite marks a website live. The limiter verdict is propagated
// as-is so a *LimitError stays recognizable via errors.As.
func (s *Service) PublishWebsite(ctx context.Context, actorID, websiteID string) error {
	if actorID == "" {
		return ErrUnauthorized
	}
	w, err := s.store.WebsiteByID(ctx, websiteID)
	if err != nil {
		return err
	}
	if err := s.limiter.CheckPublish(ctx, w.OwnerID); err != nil {
		return err
	}
	w.Published = true
	if err := s.store.UpdateWebsite(ctx, w); err != nil {
		return fmt.Errorf("publish website: %w", err)
	}
	s.log.Info("website published", zap.String("website_id", websiteID))
	return nil
}

// UnpublishWebsite takes a website offline. Never limiter-gated.
func (s *Service) UnpublishWebsite(ctx context.Context, actorID, websiteID string) error {
	if actorID == "" {
		return ErrUnauthorized
	}
	w, err := s.store.WebsiteByID(ctx, websiteID)
	if err != nil {
		return err
	}
	w.Published = false
	if err := s.store.UpdateWebsite(ctx, w); err != nil {
		return fmt.Errorf("unpublish website: %w", err)
	}
	return nil
}

// PublishPage marks a single page live.
func (s *Service) PublishPage(ctx context.Context, actorID, pageID string) error {
	if actorID == "" {
		return ErrUnauthorized
	}
	p, err := s.store.PageByID(ctx, pageID)
	if err != nil {
		return err
	}
	w, err := s.store.WebsiteByID(ctx, p.WebsiteID)
	if err != nil {
		return err
	}
	if err := s.limiter.CheckPublish(ctx, w.OwnerID); err != nil {
		return err
	}
	p.Published = true
	if err := s.store.UpdatePage(ctx, p); err != nil {
		return fmt.Errorf("publish page: %w", err)
	}
	return nil
}

// UnpublishPage takes a page offline.
func (s *Service) UnpublishPage(ctx context.Context, actorID, pageID string) error {
	if actorID == "" {
		return ErrUnauthorized
	}
	p, err := s.store.PageByID(ctx, pageID)
	if err != nil {
		return err
	}
	p.Published = false
	if err := s.store.UpdatePage(ctx, p); err != nil {
		return fmt.Errorf("unpublish page: %w", err)
	}
	return nil
}

// ShareAsTemplate flags a website as a forkable template. This is an
// explicit action, never implicit.
func (s *Service) ShareAsTemplate(ctx context.Context, actorID, websiteID string, share bool) error {
	if actorID == "" {
		return ErrUnauthorized
	}
	w, err := s.store.WebsiteByID(ctx, websiteID)
	if err != nil {
		return err
	}
	w.IsTemplate = share
	if err := s.store.UpdateWebsite(ctx, w); err != nil {
		return fmt.Errorf("update template flag: %w", err)
	}
	return nil
}

// Servable reports whether a website may be publicly served: it must be
// published and have at least one published page, one of which is the home
// page.
func Servable(w *model.Website, pages []model.Page) bool {
	if !w.Published {
		return false
	}
	hasPublishedHome := false
	for _, p := range pages {
		if p.Published && p.IsHomePage {
			hasPublishedHome = true
		}
	}
	return hasPublishedHome
}
