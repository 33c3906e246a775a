// Package model defines the persisted records of the site builder: websites,
// pages, and the flat component lists that pages own. The component tree is
// never persisted as a nested structure; it is derived on demand from the
// flat list (see internal/tree).
package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Website is the top-level publishable unit.
type Website struct {
	ID         string
	OwnerID    string
	Name       string
	Slug       string
	Published  bool
	IsTemplate bool
	ForkCount  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SEO holds per-page head metadata. Empty fields fall back to website-level
// values at materialization time.
type SEO struct {
	Title              string
	Description        string
	Keywords           string
	Canonical          string
	OGTitle            string
	OGDescription      string
	OGImage            string
	TwitterCard        string
	TwitterTitle       string
	TwitterDescription string
	TwitterImage       string
}

// Page is one URL-addressable unit of a website.
type Page struct {
	ID         string
	WebsiteID  string
	Title      string
	Path       string
	IsHomePage bool
	Published  bool
	SEO        SEO
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizedPath returns the page path with exactly one leading slash.
// Callers may store paths with or without the leading slash; both forms
// resolve to the same page.
func (p Page) NormalizedPath() string {
	return NormalizePath(p.Path)
}

// NormalizePath canonicalizes a URL path segment: a single leading slash,
// no trailing slash (except for the root path itself).
func NormalizePath(path string) string {
	path = strings.TrimSpace(path)
	path = "/" + strings.Trim(path, "/")
	return path
}

// Component is one node in a page's UI tree. ParentID is nil for root-level
// components. Position orders siblings; it need not be contiguous, only
// strictly orderable.
type Component struct {
	ID       string
	PageID   string
	Type     string
	ParentID *string
	Position int

	// Properties is the parsed, type-specific property map. It is open:
	// unknown keys are retained, and per-type defaults fill gaps at render
	// time, not here.
	Properties map[string]any

	// RawProperties holds the stored serialized form when it could not be
	// parsed. It is carried verbatim (and copied verbatim on fork) so that
	// a bad record never loses data.
	RawProperties string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot reports whether the component sits at the top level of its page.
func (c Component) IsRoot() bool {
	return c.ParentID == nil || *c.ParentID == ""
}

// CloneProperties returns a deep copy of the component's property map.
func (c Component) CloneProperties() map[string]any {
	if c.Properties == nil {
		return nil
	}
	return cloneMap(c.Properties)
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case map[string]any:
			out[k] = cloneMap(t)
		case []any:
			cp := make([]any, len(t))
			for i, e := range t {
				if em, ok := e.(map[string]any); ok {
					cp[i] = cloneMap(em)
				} else {
					cp[i] = e
				}
			}
			out[k] = cp
		default:
			out[k] = v
		}
	}
	return out
}

// EncodeProperties serializes a property map to its stored JSON form.
func EncodeProperties(props map[string]any) (string, error) {
	if props == nil {
		return "{}", nil
	}
	b, err := json.Marshal(props)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeProperties parses the stored serialized property form. The second
// return is false when the payload is not valid JSON; callers must then keep
// the original string rather than fail (fail-soft at the storage boundary).
func DecodeProperties(raw string) (map[string]any, bool) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, true
	}
	var props map[string]any
	if err := json.Unmarshal([]byte(raw), &props); err != nil {
		return nil, false
	}
	return props, true
}
