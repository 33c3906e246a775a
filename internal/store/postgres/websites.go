package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/sitesmith/sitesmith/internal/model"
	"github.com/sitesmith/sitesmith/internal/store"
)

const websiteColumns = `id, owner_id, name, slug, published, is_template, fork_count, created_at, updated_at`

func (p *PG) CreateWebsite(ctx context.Context, w *model.Website) error {
	query := `
		INSERT INTO websites (` + websiteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := p.db.ExecContext(ctx, query,
		w.ID, w.OwnerID, w.Name, w.Slug, w.Published, w.IsTemplate, w.ForkCount,
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return store.ErrSlugTaken
		}
		return fmt.Errorf("create website: %w", err)
	}
	return nil
}

func (p *PG) WebsiteByID(ctx context.Context, id string) (*model.Website, error) {
	query := `SELECT ` + websiteColumns + ` FROM websites WHERE id = $1`
	return p.scanWebsite(p.db.QueryRowContext(ctx, query, id))
}

func (p *PG) WebsiteBySlug(ctx context.Context, slug string) (*model.Website, error) {
	query := `SELECT ` + websiteColumns + ` FROM websites WHERE slug = $1`
	return p.scanWebsite(p.db.QueryRowContext(ctx, query, slug))
}

func (p *PG) FirstWebsiteByName(ctx context.Context, name string) (*model.Website, error) {
	query := `SELECT ` + websiteColumns + ` FROM websites WHERE name = $1 ORDER BY created_at LIMIT 1`
	return p.scanWebsite(p.db.QueryRowContext(ctx, query, name))
}

func (p *PG) UpdateWebsite(ctx context.Context, w *model.Website) error {
	query := `
		UPDATE websites
		SET owner_id = $2, name = $3, slug = $4, published = $5, is_template = $6,
		    fork_count = $7, updated_at = $8
		WHERE id = $1
	`
	res, err := p.db.ExecContext(ctx, query,
		w.ID, w.OwnerID, w.Name, w.Slug, w.Published, w.IsTemplate, w.ForkCount, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update website: %w", err)
	}
	return requireRows(res)
}

func (p *PG) DeleteWebsite(ctx context.Context, id string) error {
	// Pages and components go with it via ON DELETE CASCADE.
	res, err := p.db.ExecContext(ctx, `DELETE FROM websites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete website: %w", err)
	}
	return requireRows(res)
}

func (p *PG) IncrementForkCount(ctx context.Context, id string) error {
	query := `UPDATE websites SET fork_count = fork_count + 1, updated_at = NOW() WHERE id = $1`
	res, err := p.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment fork count: %w", err)
	}
	return requireRows(res)
}

func (p *PG) scanWebsite(row *sql.Row) (*model.Website, error) {
	var w model.Website
	err := row.Scan(&w.ID, &w.OwnerID, &w.Name, &w.Slug, &w.Published,
		&w.IsTemplate, &w.ForkCount, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("scan website: %w", err)
	}
	return &w, nil
}

func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
