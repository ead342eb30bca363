// Package cache implements the bytecode cache (spec.md §4.8): a freshness
// check against source/cache file mtimes, and atomic load/store of a
// finalized unit.Unit through the internal/wire envelope.
package cache

import (
	"os"
	"path/filepath"

	"github.com/jbdutton/rune-go/internal/unit"
	"github.com/jbdutton/rune-go/internal/wire"
)

// Ext is the extension a cache file carries beside its source, per
// spec.md §6 ("Located beside the source with extension .rnc").
const Ext = ".rnc"

// PathFor derives the cache path for a given source path.
func PathFor(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	return sourcePath[:len(sourcePath)-len(ext)] + Ext
}

// IsFresh reports whether the cache at cachePath is newer than the source
// at sourcePath. A missing cache file is "not fresh"; any other stat error
// on either path propagates, per spec.md §4.8.
func IsFresh(sourcePath, cachePath string) (bool, error) {
	srcInfo, err := os.Stat(sourcePath)
	if err != nil {
		return false, err
	}
	cacheInfo, err := os.Stat(cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return srcInfo.ModTime().Before(cacheInfo.ModTime()), nil
}

// Load reads and decodes the Unit at cachePath. A decode failure (corrupt
// bytes or an envelope version/magic mismatch) is returned to the caller
// rather than panicking; per spec.md §4.8 the caller's policy is to
// discard and recompile from source, not to propagate the error as fatal.
func Load(cachePath string) (*unit.Unit, error) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, err
	}
	return wire.Decode(data)
}

// Store serializes u and writes it to cachePath, creating a temp file in
// the same directory and renaming it into place so a concurrent reader
// always observes either the old or the new bytes in full (spec.md §4.8;
// fsync is explicitly not required).
func Store(cachePath string, u *unit.Unit) error {
	data, err := wire.Encode(u)
	if err != nil {
		return err
	}

	dir := filepath.Dir(cachePath)
	tmp, err := os.CreateTemp(dir, ".rnc-tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, cachePath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
