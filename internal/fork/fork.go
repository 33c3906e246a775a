// Package fork deep-copies a template website into a new, independently
// owned website: new ids throughout, parent references remapped, embedded
// URLs rewritten to the new slug. The copy is built from many small store
// writes rather than one long transaction; on any failure the partially
// built website is deleted and the original error surfaced, so callers only
// ever see all-or-nothing.
package fork

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/sitesmith/sitesmith/internal/metrics"
	"github.com/sitesmith/sitesmith/internal/model"
	"github.com/sitesmith/sitesmith/internal/store"
	"github.com/sitesmith/sitesmith/internal/tree"
)

var (
	// ErrNotTemplate is returned when the source website is not a published
	// template.
	ErrNotTemplate = errors.New("website is not a published template")
	// ErrNoPages is returned when the source website has no pages to copy.
	ErrNoPages = errors.New("website has no pages")
	// ErrUnauthorized is returned when no acting user is supplied.
	ErrUnauthorized = errors.New("unauthorized")
)

// Engine performs website forks.
type Engine struct {
	store  store.Store
	log    *zap.Logger
	tracer trace.Tracer
}

// NewEngine builds a fork engine. log may be nil.
func NewEngine(st store.Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		store:  st,
		log:    log,
		tracer: otel.Tracer("sitesmith/fork"),
	}
}

// Fork copies the source website into a new website owned by newOwnerID.
// The copy starts unpublished and is never itself a template. On success the
// source's fork counter is incremented by one.
func (e *Engine) Fork(ctx context.Context, sourceID, newOwnerID string) (*model.Website, error) {
	ctx, span := e.tracer.Start(ctx, "fork.Fork",
		trace.WithAttributes(attribute.String("source_website_id", sourceID)))
	defer span.End()

	if newOwnerID == "" {
		return nil, ErrUnauthorized
	}

	source, err := e.store.WebsiteByID(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("load source website: %w", err)
	}
	if !source.IsTemplate || !source.Published {
		return nil, fmt.Errorf("website %s: %w", sourceID, ErrNotTemplate)
	}

	pages, err := e.store.PagesByWebsite(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("load source pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("website %s: %w", sourceID, ErrNoPages)
	}
	for _, p := range pages {
		if p.Path == "" && !p.IsHomePage {
			e.log.Warn("source page has blank path",
				zap.String("page_id", p.ID),
				zap.String("website_id", sourceID),
			)
		}
	}

	name, slug, err := e.uniqueNameSlug(ctx, source.Name+" (Fork)")
	if err != nil {
		return nil, err
	}

	website := &model.Website{
		ID:         uuid.New().String(),
		OwnerID:    newOwnerID,
		Name:       name,
		Slug:       slug,
		Published:  false,
		IsTemplate: false,
	}
	if err := e.store.CreateWebsite(ctx, website); err != nil {
		metrics.ForksTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("create forked website: %w", err)
	}

	if err := e.copyPages(ctx, source, website, pages); err != nil {
		// Compensating delete: the caller must never see a half-forked
		// website. The cascade removes any pages and components created
		// before the failure.
		if delErr := e.store.DeleteWebsite(ctx, website.ID); delErr != nil {
			e.log.Error("rollback of partial fork failed",
				zap.String("website_id", website.ID),
				zap.Error(delErr),
			)
		}
		metrics.ForksTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		return nil, err
	}

	if err := e.store.IncrementForkCount(ctx, sourceID); err != nil {
		// The fork itself succeeded; a stale counter is tolerable.
		e.log.Warn("increment fork count failed",
			zap.String("website_id", sourceID),
			zap.Error(err),
		)
	}

	metrics.ForksTotal.WithLabelValues("success").Inc()
	e.log.Info("website forked",
		zap.String("source_id", sourceID),
		zap.String("fork_id", website.ID),
		zap.String("fork_slug", website.Slug),
	)
	return website, nil
}

func (e *Engine) copyPages(ctx context.Context, source, dest *model.Website, pages []model.Page) error {
	for _, page := range pages {
		newPage := page
		newPage.ID = uuid.New().String()
		newPage.WebsiteID = dest.ID
		newPage.Published = false
		if err := e.store.CreatePage(ctx, &newPage); err != nil {
			return fmt.Errorf("copy page %s: %w", page.ID, err)
		}
		if err := e.copyComponents(ctx, source, dest, page.ID, newPage.ID); err != nil {
			return fmt.Errorf("copy components of page %s: %w", page.ID, err)
		}
	}
	return nil
}

// copyComponents recreates one page's component list under new ids. Parent
// references are validated against that page's component set only; roots are
// created before children because a child needs the new id of its
// already-recreated parent.
func (e *Engine) copyComponents(ctx context.Context, source, dest *model.Website, oldPageID, newPageID string) error {
	components, err := e.store.ComponentsByPage(ctx, oldPageID)
	if err != nil {
		return fmt.Errorf("load components: %w", err)
	}

	// Lenient validation: dangling parents and cycles in untrusted source
	// data are re-parented to root, never dropped.
	t, err := tree.Build(components, tree.Lenient)
	if err != nil {
		return fmt.Errorf("validate components: %w", err)
	}
	for _, note := range t.Notes() {
		metrics.ComponentsSanitized.Inc()
		e.log.Warn("sanitized component during fork",
			zap.String("component_id", note.ComponentID),
			zap.String("reason", note.Reason),
		)
	}

	idMap := make(map[string]string, len(components))

	// Walk level by level from the roots so every parent is mapped before
	// its children.
	queue := t.Roots()
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		old := node.Component
		var newParentID *string
		if !old.IsRoot() {
			mapped, ok := idMap[*old.ParentID]
			if !ok {
				// The lenient build should make this unreachable.
				// Skip and log rather than fail the fork.
				e.log.Warn("skipping component with unmapped parent",
					zap.String("component_id", old.ID),
					zap.String("parent_id", *old.ParentID),
				)
				continue
			}
			newParentID = &mapped
		}

		newComponent := model.Component{
			ID:       uuid.New().String(),
			PageID:   newPageID,
			Type:     old.Type,
			ParentID: newParentID,
			Position: old.Position,
		}
		e.copyProperties(&newComponent, old, source.Slug, dest.Slug)

		if err := e.store.CreateComponent(ctx, &newComponent); err != nil {
			return fmt.Errorf("create component (was %s): %w", old.ID, err)
		}
		idMap[old.ID] = newComponent.ID
		queue = append(queue, node.Children...)
	}
	return nil
}

// copyProperties carries the property payload across, rewriting embedded
// URLs from the source slug to the destination slug. Unparseable payloads
// are copied verbatim.
func (e *Engine) copyProperties(dst *model.Component, src model.Component, oldSlug, newSlug string) {
	raw := src.RawProperties
	if raw == "" {
		encoded, err := model.EncodeProperties(src.Properties)
		if err != nil {
			e.log.Warn("encode properties failed, copying parsed map unchanged",
				zap.String("component_id", src.ID),
				zap.Error(err),
			)
			dst.Properties = src.CloneProperties()
			return
		}
		raw = encoded
	}

	rewritten := rewriteProperties(raw, oldSlug, newSlug)
	props, ok := model.DecodeProperties(rewritten)
	if !ok {
		// Keep the original serialized form untouched.
		dst.RawProperties = src.RawProperties
		dst.Properties = src.CloneProperties()
		return
	}
	dst.Properties = props
}
