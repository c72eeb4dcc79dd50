package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	shareadapter "audiomark/internal/modules/share/adapter/out"
)

func writeManifests(t *testing.T, dir, raw string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "plugins.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write manifests: %v", err)
	}
}

func TestManifestStoreResolvesRelativeBinary(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sum := strings.Repeat("b", 64)
	writeManifests(t, dir, `[{"name":"notefile","version":"1.0.0","binary":"bin/notefile","sha256":"`+sum+`","enabled":true}]`)
	store, err := shareadapter.NewFileManifestStore(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(manifests) != 1 || manifests[0].Binary != filepath.Join(dir, "bin", "notefile") {
		t.Fatalf("unexpected manifests %+v", manifests)
	}
}

func TestManifestStoreRejectsSchemaViolations(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"missing sha":   `[{"name":"a","version":"1","binary":"a","enabled":true}]`,
		"unknown field": `[{"name":"a","version":"1","binary":"a","sha256":"` + strings.Repeat("c", 64) + `","enabled":true,"shell":"sh"}]`,
		"bad name":      `[{"name":"Bad Name","version":"1","binary":"a","sha256":"` + strings.Repeat("c", 64) + `","enabled":true}]`,
		"not an array":  `{"name":"a"}`,
	}
	for name, raw := range cases {
		dir := t.TempDir()
		writeManifests(t, dir, raw)
		store, err := shareadapter.NewFileManifestStore(dir)
		if err != nil {
			t.Fatalf("new store: %v", err)
		}
		if _, err := store.Load(context.Background()); err == nil {
			t.Fatalf("%s: expected schema error", name)
		}
	}
}

func TestManifestStoreMissingFileIsEmpty(t *testing.T) {
	t.Parallel()
	store, err := shareadapter.NewFileManifestStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	manifests, err := store.Load(context.Background())
	if err != nil || len(manifests) != 0 {
		t.Fatalf("expected empty manifests, got %v %v", manifests, err)
	}
}
