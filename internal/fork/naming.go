package fork

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sitesmith/sitesmith/internal/store"
)

// maxNameAttempts bounds collision probing. Beyond it a timestamp suffix
// guarantees termination; an unbounded retry loop is a correctness risk.
const maxNameAttempts = 25

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a display name.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "site"
	}
	return slug
}

// uniqueNameSlug finds a free name/slug pair for the forked website. It tries
// the base name first, then bounded counter suffixes (" 1", " 2", ...), then
// falls back to a timestamp suffix. Slugs, not names, are the
// uniqueness-enforced key; the name probe just keeps dashboards readable.
func (e *Engine) uniqueNameSlug(ctx context.Context, base string) (string, string, error) {
	for i := 0; i <= maxNameAttempts; i++ {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s %d", base, i)
		}
		free, err := e.nameSlugFree(ctx, name)
		if err != nil {
			return "", "", err
		}
		if free {
			return name, Slugify(name), nil
		}
	}
	name := fmt.Sprintf("%s %d", base, time.Now().Unix())
	return name, Slugify(name), nil
}

func (e *Engine) nameSlugFree(ctx context.Context, name string) (bool, error) {
	if _, err := e.store.FirstWebsiteByName(ctx, name); err == nil {
		return false, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, fmt.Errorf("probe name %q: %w", name, err)
	}
	if _, err := e.store.WebsiteBySlug(ctx, Slugify(name)); err == nil {
		return false, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, fmt.Errorf("probe slug %q: %w", Slugify(name), err)
	}
	return true, nil
}
