package catalog_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite" // pure-Go sqlite driver

	"github.com/mirelk/jsonlens/internal/catalog"
	"github.com/mirelk/jsonlens/internal/render"
	"github.com/mirelk/jsonlens/internal/request"
	"github.com/mirelk/jsonlens/internal/testutil"
)

func openTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// serialize access to avoid SQLITE deadlocks in concurrent writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { db.Close() })

	c, err := catalog.NewCatalog(db, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

func TestCatalog_SeedsDefaultPresets(t *testing.T) {
	t.Parallel()
	c := openTestCatalog(t)

	ps, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ps) != len(catalog.DefaultPresets()) {
		t.Fatalf("expected %d seeded presets, got %d", len(catalog.DefaultPresets()), len(ps))
	}

	cat, err := c.Get(context.Background(), "cat-image")
	if err != nil {
		t.Fatalf("Get cat-image: %v", err)
	}
	if cat.Spec.Host != "api.thecatapi.com" {
		t.Errorf("seeded host = %q", cat.Spec.Host)
	}
	if cat.View != render.ViewFields {
		t.Errorf("seeded view = %q", cat.View)
	}
}

func TestCatalog_SaveGetDelete(t *testing.T) {
	t.Parallel()
	c := openTestCatalog(t)
	ctx := context.Background()

	p, err := c.Save(ctx, catalog.Preset{
		Slug: "My Endpoint",
		Name: "My endpoint",
		Spec: request.Spec{Host: "h", Path: "/p", Query: "q=1"},
		View: render.ViewPretty,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if p.Slug != "my-endpoint" {
		t.Errorf("slug not normalized: %q", p.Slug)
	}
	if p.ID == "" {
		t.Error("expected a generated id")
	}
	if p.Spec.Method != request.MethodGet {
		t.Errorf("method not normalized: %q", p.Spec.Method)
	}

	got, err := c.Get(ctx, "my-endpoint")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Spec.Query != "q=1" {
		t.Errorf("stored query = %q", got.Spec.Query)
	}

	if err := c.Delete(ctx, "my-endpoint"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "my-endpoint"); !errors.Is(err, catalog.ErrPresetNotFound) {
		t.Errorf("expected ErrPresetNotFound after delete, got %v", err)
	}
}

func TestCatalog_SaveUpsertsBySlug(t *testing.T) {
	t.Parallel()
	c := openTestCatalog(t)
	ctx := context.Background()

	if _, err := c.Save(ctx, catalog.Preset{Slug: "x", Spec: request.Spec{Host: "h1"}}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := c.Save(ctx, catalog.Preset{Slug: "x", Spec: request.Spec{Host: "h2"}}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := c.Get(ctx, "x")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Spec.Host != "h2" {
		t.Errorf("expected the second save to win, got host %q", got.Spec.Host)
	}

	ps, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := len(catalog.DefaultPresets()) + 1
	if len(ps) != want {
		t.Errorf("expected %d presets, got %d", want, len(ps))
	}
}

func TestCatalog_DeleteMissing(t *testing.T) {
	t.Parallel()
	c := openTestCatalog(t)

	err := c.Delete(context.Background(), "never-existed")
	if !errors.Is(err, catalog.ErrPresetNotFound) {
		t.Errorf("expected ErrPresetNotFound, got %v", err)
	}
}
