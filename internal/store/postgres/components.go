package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/sitesmith/sitesmith/internal/model"
	"github.com/sitesmith/sitesmith/internal/store"
)

const componentColumns = `id, page_id, type, parent_id, position, properties, created_at, updated_at`

func (p *PG) CreateComponent(ctx context.Context, c *model.Component) error {
	raw, err := storedProperties(c)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO components (` + componentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = p.db.ExecContext(ctx, query,
		c.ID, c.PageID, c.Type, nullable(c.ParentID), c.Position, raw,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create component: %w", err)
	}
	return nil
}

func (p *PG) ComponentByID(ctx context.Context, id string) (*model.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components WHERE id = $1`
	c, err := p.scanComponent(p.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (p *PG) ComponentsByPage(ctx context.Context, pageID string) ([]model.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components WHERE page_id = $1 ORDER BY created_at, id`
	rows, err := p.db.QueryContext(ctx, query, pageID)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	defer rows.Close()

	var out []model.Component
	for rows.Next() {
		c, err := p.scanComponentRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (p *PG) UpdateComponent(ctx context.Context, c *model.Component) error {
	raw, err := storedProperties(c)
	if err != nil {
		return err
	}
	query := `
		UPDATE components
		SET type = $2, parent_id = $3, position = $4, properties = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := p.db.ExecContext(ctx, query,
		c.ID, c.Type, nullable(c.ParentID), c.Position, raw, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update component: %w", err)
	}
	return requireRows(res)
}

func (p *PG) DeleteComponents(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := p.db.ExecContext(ctx, `DELETE FROM components WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("delete components: %w", err)
	}
	return nil
}

// storedProperties picks the serialized form to persist: the verbatim raw
// payload when the record carries one, the encoded map otherwise.
func storedProperties(c *model.Component) (string, error) {
	if c.RawProperties != "" {
		return c.RawProperties, nil
	}
	raw, err := model.EncodeProperties(c.Properties)
	if err != nil {
		return "", fmt.Errorf("encode properties for component %s: %w", c.ID, err)
	}
	return raw, nil
}

func (p *PG) scanComponent(row *sql.Row) (*model.Component, error) {
	c, err := p.scanComponentRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (p *PG) scanComponentRow(row rowScanner) (*model.Component, error) {
	var c model.Component
	var parentID sql.NullString
	var raw string
	err := row.Scan(&c.ID, &c.PageID, &c.Type, &parentID, &c.Position, &raw,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan component: %w", err)
	}
	if parentID.Valid && parentID.String != "" {
		c.ParentID = &parentID.String
	}
	props, ok := model.DecodeProperties(raw)
	if ok {
		c.Properties = props
	} else {
		// Keep the payload verbatim; rendering falls back to type defaults.
		c.RawProperties = raw
		p.log.Warn("component has unparseable properties",
			zap.String("component_id", c.ID),
			zap.String("type", c.Type))
	}
	return &c, nil
}

func nullable(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
