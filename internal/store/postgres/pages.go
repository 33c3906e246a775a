package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sitesmith/sitesmith/internal/model"
	"github.com/sitesmith/sitesmith/internal/store"
)

const pageColumns = `id, website_id, title, path, is_home_page, published, seo, created_at, updated_at`

func (p *PG) CreatePage(ctx context.Context, page *model.Page) error {
	seo, err := json.Marshal(page.SEO)
	if err != nil {
		return fmt.Errorf("marshal seo: %w", err)
	}
	query := `
		INSERT INTO pages (` + pageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = p.db.ExecContext(ctx, query,
		page.ID, page.WebsiteID, page.Title, page.Path, page.IsHomePage,
		page.Published, seo, page.CreatedAt, page.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	return nil
}

func (p *PG) PageByID(ctx context.Context, id string) (*model.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE id = $1`
	return p.scanPage(p.db.QueryRowContext(ctx, query, id))
}

func (p *PG) PagesByWebsite(ctx context.Context, websiteID string) ([]model.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE website_id = $1 ORDER BY created_at, id`
	rows, err := p.db.QueryContext(ctx, query, websiteID)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var pages []model.Page
	for rows.Next() {
		page, err := scanPageRow(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *page)
	}
	return pages, rows.Err()
}

func (p *PG) PageByPath(ctx context.Context, websiteID, path string) (*model.Page, error) {
	// Paths may be stored with or without the leading slash; normalize the
	// stored side in SQL and the argument in Go.
	query := `
		SELECT ` + pageColumns + `
		FROM pages
		WHERE website_id = $1 AND '/' || trim(both '/' from path) = $2
		LIMIT 1
	`
	return p.scanPage(p.db.QueryRowContext(ctx, query, websiteID, model.NormalizePath(path)))
}

func (p *PG) UpdatePage(ctx context.Context, page *model.Page) error {
	seo, err := json.Marshal(page.SEO)
	if err != nil {
		return fmt.Errorf("marshal seo: %w", err)
	}
	query := `
		UPDATE pages
		SET title = $2, path = $3, is_home_page = $4, published = $5, seo = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := p.db.ExecContext(ctx, query,
		page.ID, page.Title, page.Path, page.IsHomePage, page.Published, seo, page.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	return requireRows(res)
}

func (p *PG) DeletePage(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return requireRows(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (p *PG) scanPage(row *sql.Row) (*model.Page, error) {
	page, err := scanPageRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return page, nil
}

func scanPageRow(row rowScanner) (*model.Page, error) {
	var page model.Page
	var seo []byte
	err := row.Scan(&page.ID, &page.WebsiteID, &page.Title, &page.Path,
		&page.IsHomePage, &page.Published, &seo, &page.CreatedAt, &page.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan page: %w", err)
	}
	if len(seo) > 0 {
		if err := json.Unmarshal(seo, &page.SEO); err != nil {
			return nil, fmt.Errorf("unmarshal seo for page %s: %w", page.ID, err)
		}
	}
	return &page, nil
}
