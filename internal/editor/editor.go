// Package editor exposes the tree mutation API used by the editing surface:
// create, update, move, and delete operations over one page's component tree.
// Every mutation is validated strictly before it is written; a malformed
// request is rejected with no state change.
package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitesmith/sitesmith/internal/model"
	"github.com/sitesmith/sitesmith/internal/registry"
	"github.com/sitesmith/sitesmith/internal/store"
	"github.com/sitesmith/sitesmith/internal/tree"
)

var (
	// ErrValidation marks a rejected mutation; the operation had no effect.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized is returned for any write without an acting user.
	ErrUnauthorized = errors.New("unauthorized")
)

// Notifier is told when a page's tree changed. The live preview hub
// implements it; a no-op implementation is fine everywhere else.
type Notifier interface {
	PageChanged(pageID string)
}

// NopNotifier discards change notifications.
type NopNotifier struct{}

// PageChanged implements Notifier.
func (NopNotifier) PageChanged(string) {}

// Service implements the mutation API over a store.
type Service struct {
	store    store.Store
	registry *registry.Registry
	notifier Notifier
	log      *zap.Logger
}

// NewService builds the mutation service. notifier and log may be nil.
func NewService(st store.Store, reg *registry.Registry, notifier Notifier, log *zap.Logger) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, registry: reg, notifier: notifier, log: log}
}

// CreateInput describes a component to create. Position is optional: when
// nil the component is appended after the current last sibling.
type CreateInput struct {
	PageID     string
	Type       string
	ParentID   *string
	Position   *int
	Properties map[string]any
}

// Create adds a component to a page. The parent, when given, must exist in
// the same page and be container-capable.
func (s *Service) Create(ctx context.Context, actorID string, in CreateInput) (*model.Component, error) {
	if actorID == "" {
		return nil, ErrUnauthorized
	}
	if _, known := s.registry.Lookup(in.Type); !known {
		return nil, fmt.Errorf("unknown component type %q: %w", in.Type, ErrValidation)
	}
	if _, err := s.store.PageByID(ctx, in.PageID); err != nil {
		return nil, fmt.Errorf("page %s: %w", in.PageID, ErrValidation)
	}

	siblings, err := s.store.ComponentsByPage(ctx, in.PageID)
	if err != nil {
		return nil, fmt.Errorf("load components: %w", err)
	}

	if in.ParentID != nil && *in.ParentID != "" {
		parent, ok := findComponent(siblings, *in.ParentID)
		if !ok {
			return nil, fmt.Errorf("parent %s not found in page: %w", *in.ParentID, ErrValidation)
		}
		if !s.registry.IsContainer(parent.Type) {
			return nil, fmt.Errorf("parent type %q cannot have children: %w", parent.Type, ErrValidation)
		}
		if err := s.checkColumnsRoom(siblings, parent, ""); err != nil {
			return nil, err
		}
	} else {
		in.ParentID = nil
	}

	position := nextPosition(siblings, in.ParentID)
	if in.Position != nil {
		position = *in.Position
	}

	props := s.registry.Defaults(in.Type)
	for k, v := range in.Properties {
		props[k] = v
	}

	c := &model.Component{
		ID:         uuid.New().String(),
		PageID:     in.PageID,
		Type:       in.Type,
		ParentID:   in.ParentID,
		Position:   position,
		Properties: props,
	}

	// The new record must still yield a valid tree.
	if err := validateWith(siblings, *c); err != nil {
		return nil, err
	}

	if err := s.store.CreateComponent(ctx, c); err != nil {
		return nil, fmt.Errorf("create component: %w", err)
	}
	s.notifier.PageChanged(in.PageID)
	return c, nil
}

// UpdateProperties merges the supplied deltas into the stored property map.
// The merge is permissive: unknown and extra keys are retained; values are
// only guarded at render time via per-type defaulting.
func (s *Service) UpdateProperties(ctx context.Context, actorID, componentID string, delta map[string]any) (*model.Component, error) {
	if actorID == "" {
		return nil, ErrUnauthorized
	}
	c, err := s.store.ComponentByID(ctx, componentID)
	if err != nil {
		return nil, err
	}
	if c.Properties == nil {
		c.Properties = make(map[string]any, len(delta))
	}
	for k, v := range delta {
		c.Properties[k] = v
	}
	if err := s.store.UpdateComponent(ctx, c); err != nil {
		return nil, fmt.Errorf("update component: %w", err)
	}
	s.notifier.PageChanged(c.PageID)
	return c, nil
}

// Move atomically changes a component's position and/or parent. Destination
// siblings are not renumbered: positions need not be contiguous, only
// strictly orderable, and ties break by record order.
func (s *Service) Move(ctx context.Context, actorID, componentID string, newParentID *string, newPosition int) (*model.Component, error) {
	if actorID == "" {
		return nil, ErrUnauthorized
	}
	c, err := s.store.ComponentByID(ctx, componentID)
	if err != nil {
		return nil, err
	}

	all, err := s.store.ComponentsByPage(ctx, c.PageID)
	if err != nil {
		return nil, fmt.Errorf("load components: %w", err)
	}

	if newParentID != nil && *newParentID != "" {
		if *newParentID == componentID {
			return nil, fmt.Errorf("component cannot be its own parent: %w", ErrValidation)
		}
		parent, ok := findComponent(all, *newParentID)
		if !ok {
			return nil, fmt.Errorf("parent %s not found in page: %w", *newParentID, ErrValidation)
		}
		if !s.registry.IsContainer(parent.Type) {
			return nil, fmt.Errorf("parent type %q cannot have children: %w", parent.Type, ErrValidation)
		}
		if isDescendant(all, componentID, *newParentID) {
			return nil, fmt.Errorf("cannot move component under its own descendant: %w", ErrValidation)
		}
		// Reordering within the same parent is always allowed, even when a
		// forked tree already exceeds the column count.
		if !sameParent(c.ParentID, newParentID) {
			if err := s.checkColumnsRoom(all, parent, componentID); err != nil {
				return nil, err
			}
		}
	} else {
		newParentID = nil
	}

	c.ParentID = newParentID
	c.Position = newPosition

	// Re-check the whole page tree with the move applied.
	updated := replaceComponent(all, *c)
	if _, err := tree.Build(updated, tree.Strict); err != nil {
		return nil, fmt.Errorf("move would corrupt tree: %w", errors.Join(ErrValidation, err))
	}

	if err := s.store.UpdateComponent(ctx, c); err != nil {
		return nil, fmt.Errorf("update component: %w", err)
	}
	s.notifier.PageChanged(c.PageID)
	return c, nil
}

// Delete removes a component and cascades to its entire subtree, so no
// orphaned records survive for later validators to sanitize.
func (s *Service) Delete(ctx context.Context, actorID, componentID string) error {
	if actorID == "" {
		return ErrUnauthorized
	}
	c, err := s.store.ComponentByID(ctx, componentID)
	if err != nil {
		return err
	}

	all, err := s.store.ComponentsByPage(ctx, c.PageID)
	if err != nil {
		return fmt.Errorf("load components: %w", err)
	}

	// Lenient here: a pre-existing bad record must not block deletion.
	t, err := tree.Build(all, tree.Lenient)
	if err != nil {
		return fmt.Errorf("build tree: %w", err)
	}
	ids := append([]string{componentID}, t.DescendantsOf(componentID)...)

	if err := s.store.DeleteComponents(ctx, ids); err != nil {
		return fmt.Errorf("delete components: %w", err)
	}
	s.log.Debug("deleted component subtree",
		zap.String("component_id", componentID),
		zap.Int("cascade_count", len(ids)-1),
	)
	s.notifier.PageChanged(c.PageID)
	return nil
}

// checkColumnsRoom rejects adding a child to a columns component that is
// already at its configured column count. The limit only guards mutations;
// bulk data from a fork or import may exceed it, and the renderer wraps the
// extra children to a new row.
func (s *Service) checkColumnsRoom(all []model.Component, parent model.Component, excludeID string) error {
	if parent.Type != "columns" {
		return nil
	}
	capacity := columnCount(parent.Properties)
	if capacity < 1 {
		capacity = columnCount(s.registry.Defaults(parent.Type))
	}
	if capacity < 1 {
		return nil
	}
	occupied := 0
	for _, c := range all {
		if c.ID != excludeID && sameParent(c.ParentID, &parent.ID) {
			occupied++
		}
	}
	if occupied >= capacity {
		return fmt.Errorf("columns component %s already holds %d of %d children: %w",
			parent.ID, occupied, capacity, ErrValidation)
	}
	return nil
}

// Property values arrive as ints from defaults and as float64 from JSON.
func columnCount(props map[string]any) int {
	switch v := props["count"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// nextPosition computes the append position among the target siblings:
// max(existing positions)+1, or 0 when there are none.
func nextPosition(all []model.Component, parentID *string) int {
	max := -1
	for _, c := range all {
		if !sameParent(c.ParentID, parentID) {
			continue
		}
		if c.Position > max {
			max = c.Position
		}
	}
	return max + 1
}

func sameParent(a, b *string) bool {
	if a == nil || *a == "" {
		return b == nil || *b == ""
	}
	if b == nil {
		return false
	}
	return *a == *b
}

func findComponent(all []model.Component, id string) (model.Component, bool) {
	for _, c := range all {
		if c.ID == id {
			return c, true
		}
	}
	return model.Component{}, false
}

// isDescendant reports whether candidate sits in the subtree rooted at id.
func isDescendant(all []model.Component, id, candidate string) bool {
	t, err := tree.Build(all, tree.Lenient)
	if err != nil {
		return false
	}
	for _, did := range t.DescendantsOf(id) {
		if did == candidate {
			return true
		}
	}
	return false
}

func replaceComponent(all []model.Component, c model.Component) []model.Component {
	out := make([]model.Component, len(all))
	copy(out, all)
	for i := range out {
		if out[i].ID == c.ID {
			out[i] = c
		}
	}
	return out
}

func validateWith(existing []model.Component, c model.Component) error {
	candidate := make([]model.Component, len(existing), len(existing)+1)
	copy(candidate, existing)
	candidate = append(candidate, c)
	if _, err := tree.Build(candidate, tree.Strict); err != nil {
		return fmt.Errorf("create would corrupt tree: %w", errors.Join(ErrValidation, err))
	}
	return nil
}
