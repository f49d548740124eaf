// Package catalog keeps named endpoint presets in SQLite: the request spec,
// extraction profile and view mode for an endpoint worth coming back to.
// Presets are the only persisted state; responses and artifacts never touch
// the database.
package catalog

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mirelk/jsonlens/internal/extract"
	"github.com/mirelk/jsonlens/internal/logging"
	"github.com/mirelk/jsonlens/internal/render"
	"github.com/mirelk/jsonlens/internal/request"
)

//go:embed schema.sql
var schemaFS embed.FS

var ErrPresetNotFound = errors.New("preset not found")

// Preset is one saved endpoint configuration.
type Preset struct {
	ID        string       `json:"id"`
	Slug      string       `json:"slug"`
	Name      string       `json:"name"`
	Spec      request.Spec `json:"spec"`
	Profile   string       `json:"profile"`
	View      render.View  `json:"view"`
	CreatedAt time.Time    `json:"created_at"`
}

// Catalog manages presets in a SQLite database.
type Catalog struct {
	db     *sql.DB
	logger logging.Logger
}

// NewCatalog returns a Catalog, runs migrations from schema.sql and seeds the
// built-in demo presets when the table is empty.
func NewCatalog(db *sql.DB, logger logging.Logger) (*Catalog, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}

	c := &Catalog{db: db, logger: logger}
	if err := c.seed(context.Background()); err != nil {
		return nil, fmt.Errorf("seed presets: %w", err)
	}
	return c, nil
}

// DefaultPresets returns the two demo endpoints the catalog is seeded with: a
// cat-image catalog and a museum collection catalog.
func DefaultPresets() []Preset {
	return []Preset{
		{
			Slug: "cat-image",
			Name: "Random cat image",
			Spec: request.Spec{
				Method: request.MethodGet,
				Host:   "api.thecatapi.com",
				Path:   "/v1/images/search",
				Query:  "limit=1",
			},
			Profile: extract.ProfileCatImage,
			View:    render.ViewFields,
		},
		{
			Slug: "museum-object",
			Name: "Museum collection object",
			Spec: request.Spec{
				Method:    request.MethodGet,
				Host:      "collectionapi.metmuseum.org",
				Path:      "/public/collection/v1/objects/",
				PathParam: "436535",
			},
			Profile: extract.ProfileMuseumObject,
			View:    render.ViewFields,
		},
	}
}

func (c *Catalog) seed(ctx context.Context) error {
	var count int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM presets`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, p := range DefaultPresets() {
		if _, err := c.Save(ctx, p); err != nil {
			return err
		}
	}
	if c.logger != nil {
		c.logger.Info("seeded default presets", logging.Field{Key: "count", Value: len(DefaultPresets())})
	}
	return nil
}

// normalizeSlug makes a slug safe and simple.
func normalizeSlug(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, " ", "-")
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') ||
			(r >= '0' && r <= '9') ||
			r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		out = uuid.New().String()[:8]
	}
	return out
}

// Save inserts or replaces the preset under its normalized slug and returns
// the stored copy.
func (c *Catalog) Save(ctx context.Context, p Preset) (*Preset, error) {
	p.Slug = normalizeSlug(p.Slug)
	if p.Name == "" {
		p.Name = p.Slug
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.View == "" {
		p.View = render.ViewPretty
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	spec := p.Spec.Normalize()

	_, err := c.db.ExecContext(ctx, `
INSERT INTO presets (id, slug, name, method, host, path, query, path_param, profile, view, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(slug) DO UPDATE SET
  name = excluded.name,
  method = excluded.method,
  host = excluded.host,
  path = excluded.path,
  query = excluded.query,
  path_param = excluded.path_param,
  profile = excluded.profile,
  view = excluded.view`,
		p.ID, p.Slug, p.Name, string(spec.Method), spec.Host, spec.Path, spec.Query, spec.PathParam,
		p.Profile, string(p.View), p.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("save preset %q: %w", p.Slug, err)
	}

	return c.Get(ctx, p.Slug)
}

// Get returns the preset stored under slug, or ErrPresetNotFound.
func (c *Catalog) Get(ctx context.Context, slug string) (*Preset, error) {
	slug = normalizeSlug(slug)
	row := c.db.QueryRowContext(ctx, `
SELECT id, slug, name, method, host, path, query, path_param, profile, view, created_at
FROM presets WHERE slug = ?`, slug)

	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPresetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get preset %q: %w", slug, err)
	}
	return p, nil
}

// List returns all presets ordered by creation time.
func (c *Catalog) List(ctx context.Context) ([]Preset, error) {
	rows, err := c.db.QueryContext(ctx, `
SELECT id, slug, name, method, host, path, query, path_param, profile, view, created_at
FROM presets ORDER BY created_at, slug`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	var out []Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Delete removes the preset stored under slug. Deleting a missing preset
// returns ErrPresetNotFound.
func (c *Catalog) Delete(ctx context.Context, slug string) error {
	slug = normalizeSlug(slug)
	res, err := c.db.ExecContext(ctx, `DELETE FROM presets WHERE slug = ?`, slug)
	if err != nil {
		return fmt.Errorf("delete preset %q: %w", slug, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPresetNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPreset(row rowScanner) (*Preset, error) {
	var p Preset
	var method, view string
	var createdAt int64
	err := row.Scan(&p.ID, &p.Slug, &p.Name, &method, &p.Spec.Host, &p.Spec.Path,
		&p.Spec.Query, &p.Spec.PathParam, &p.Profile, &view, &createdAt)
	if err != nil {
		return nil, err
	}
	p.Spec.Method = request.Method(method)
	p.View = render.View(view)
	p.CreatedAt = time.Unix(createdAt, 0)
	return &p, nil
}
