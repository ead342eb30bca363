package item

// ImportKey identifies an import entry: the item scope it is visible from,
// and the local component name it binds.
type ImportKey struct {
	At        string // string form of the containing Item, for map-key use
	Component string
}

// ImportEntry records what an import resolves to, plus where it was
// declared (for diagnostics).
type ImportEntry struct {
	Item Item
	Span any // optional origin span; typed any to avoid a dependency on ast
}

// ImportTable maps (containing item, local name) to the item it resolves
// to. Lookup walks the containing item's prefixes outward until a match or
// exhaustion, per spec.md §4.2.
type ImportTable struct {
	entries map[ImportKey]ImportEntry
}

// NewImportTable returns an empty table.
func NewImportTable() *ImportTable {
	return &ImportTable{entries: make(map[ImportKey]ImportEntry)}
}

// Insert registers (or overwrites) an import entry. Per spec.md §9's open
// question on prelude shadowing, a later insert at the same key always
// overwrites the earlier one — there is no special protection for
// prelude-seeded entries.
func (t *ImportTable) Insert(at Item, component string, entry ImportEntry) {
	t.entries[ImportKey{At: at.String(), Component: component}] = entry
}

// LookupByName walks base's prefixes outward (base, then base minus its
// last component, and so on to the empty item) looking for an import of
// local. Returns the resolved Item and true on the first match.
func (t *ImportTable) LookupByName(base Item, local string) (Item, bool) {
	cur := base
	for {
		key := ImportKey{At: cur.String(), Component: local}
		if entry, ok := t.entries[key]; ok {
			return entry.Item, true
		}

		next, _, ok := cur.Pop()
		if !ok {
			return Item{}, false
		}
		cur = next
	}
}

// ConvertPath resolves a leading identifier against the import table
// (walking base's prefixes outward), falling back to Of(name) if nothing
// matches, then appends the remaining segments verbatim. This mirrors
// unit_builder.rs's convert_path.
func ConvertPath(table *ImportTable, base Item, name string, rest []string) Item {
	resolved, ok := table.LookupByName(base, name)
	if !ok {
		resolved = Of(name)
	}
	for _, seg := range rest {
		resolved = resolved.Push(Ident(seg))
	}
	return resolved
}

// Entries exposes the raw entry map for iteration (e.g. by a Unit
// builder's seeded-prelude enumeration). Callers must not mutate the
// returned map.
func (t *ImportTable) Entries() map[ImportKey]ImportEntry {
	return t.entries
}
