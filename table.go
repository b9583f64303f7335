package typedstream

// tableEntry is one slot of the shared-object table. filled is false only
// for the brief window between reserving a placeholder object slot and
// replacing it with the constructed instance (which happens before the
// instance's class contributions are decoded); referring to an unfilled
// slot can only happen on a malformed stream, since class data never
// back-references the object slot reserved for it.
type tableEntry struct {
	kind    ReferentKind
	value   any
	filled  bool
}

// objectTable is the unarchiver's shared-object table: an ordered, kind-
// tagged sequence of C strings, classes, and objects, indexed by insertion
// order (which must match the writer's assignment order).
type objectTable struct {
	entries []tableEntry
}

// reserve appends a not-yet-filled OBJECT slot and returns its index.
func (t *objectTable) reserve() int {
	t.entries = append(t.entries, tableEntry{kind: ReferentObject})
	return len(t.entries) - 1
}

// fill replaces the placeholder at index with its constructed value.
func (t *objectTable) fill(index int, value any) {
	t.entries[index].value = value
	t.entries[index].filled = true
}

// appendFilled appends an already-complete slot (used for C strings and
// classes, which are never placeholder-reserved) and returns its index.
func (t *objectTable) appendFilled(kind ReferentKind, value any) int {
	t.entries = append(t.entries, tableEntry{kind: kind, value: value, filled: true})
	return len(t.entries) - 1
}

// lookup resolves a reference, verifying that the declared kind matches the
// slot's stored kind.
func (t *objectTable) lookup(ref ReferenceEvent) (any, error) {
	if ref.Index < 0 || ref.Index >= len(t.entries) {
		return nil, newErr(ErrInvalidTypedStream, "reference index out of range")
	}
	entry := t.entries[ref.Index]
	if !entry.filled {
		panic("typedstream: reference to unfilled object table slot")
	}
	if entry.kind != ref.Kind {
		return nil, newErr(ErrReferenceKindMismatch,
			"wanted "+ref.Kind.String()+", slot holds "+entry.kind.String())
	}
	return entry.value, nil
}
