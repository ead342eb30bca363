package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jbdutton/rune-go/internal/hash"
	"github.com/jbdutton/rune-go/internal/unit"
	"github.com/jbdutton/rune-go/internal/wire"
)

func TestPathForReplacesExtension(t *testing.T) {
	if got := PathFor("foo/bar.rn"); got != "foo/bar.rnc" {
		t.Fatalf("expected foo/bar.rnc, got %s", got)
	}
}

func TestIsFreshMissingCacheIsNotFresh(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.rn")
	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	fresh, err := IsFresh(src, filepath.Join(dir, "main.rnc"))
	if err != nil {
		t.Fatal(err)
	}
	if fresh {
		t.Fatal("expected not fresh when cache file is absent")
	}
}

func TestIsFreshComparesModTimes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.rn")
	cachePath := filepath.Join(dir, "main.rnc")

	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	os.Chtimes(src, now, now)

	if err := os.WriteFile(cachePath, []byte("y"), 0644); err != nil {
		t.Fatal(err)
	}
	later := now.Add(time.Second)
	os.Chtimes(cachePath, later, later)

	fresh, err := IsFresh(src, cachePath)
	if err != nil {
		t.Fatal(err)
	}
	if !fresh {
		t.Fatal("expected fresh when cache is newer than source")
	}

	// Touch source after the cache: no longer fresh.
	evenLater := later.Add(time.Second)
	os.Chtimes(src, evenLater, evenLater)
	fresh, err = IsFresh(src, cachePath)
	if err != nil {
		t.Fatal(err)
	}
	if fresh {
		t.Fatal("expected stale when source is newer than cache")
	}
}

func TestStoreAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "main.rnc")

	u := &unit.Unit{
		Functions: map[hash.Hash]unit.UnitFn{hash.Of("f"): {Args: 2}},
		StaticStrings: []string{"s"},
	}
	if err := Store(cachePath, u); err != nil {
		t.Fatal(err)
	}

	got, err := Load(cachePath)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.StaticStrings) != 1 || got.StaticStrings[0] != "s" {
		t.Fatalf("unexpected round-trip result: %+v", got)
	}

	// No leftover temp files beside the cache.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file in %s, got %d", dir, len(entries))
	}
}

func TestLoadDiscardsCorruptCache(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "main.rnc")
	if err := os.WriteFile(cachePath, []byte("not a valid cache"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(cachePath); err == nil {
		t.Fatal("expected an error loading a corrupt cache file")
	}
}

func TestLoadDiscardsVersionMismatch(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "main.rnc")

	data, err := wire.Encode(&unit.Unit{})
	if err != nil {
		t.Fatal(err)
	}
	// Simulate bytes produced by a future envelope version by truncating
	// and rewriting a bad header in its place.
	bad := append([]byte{0, 0, 0, 0, 0, 0, 0, 0}, data...)
	if err := os.WriteFile(cachePath, bad, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(cachePath); err == nil {
		t.Fatal("expected an error loading a cache file with a corrupted envelope")
	}
}
