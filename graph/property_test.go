package graph

import (
	"testing"

	"pgregory.net/rapid"
)

func TestProperty_DistinctHashesAllRegister(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hashes := rapid.SliceOfNDistinct(rapid.Uint64(), 1, 50, rapid.ID[uint64]).Draw(rt, "hashes")

		r := NewNodeRegistry(nil)
		for i, h := range hashes {
			if err := r.Register(fixedHash{id: "v", h: h}, ""); err != nil {
				rt.Fatalf("register %d (hash %d): %v", i, h, err)
			}
		}
		if r.Count() != len(hashes) {
			rt.Fatalf("count = %d, want %d", r.Count(), len(hashes))
		}
	})
}

func TestProperty_DuplicateKeyNeverOverwrites(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		key := rapid.StringMatching(`[a-z]{1,12}`).Draw(rt, "key")
		first := rapid.Int().Draw(rt, "first")
		second := rapid.Int().Draw(rt, "second")
		delegated := rapid.Bool().Draw(rt, "delegated")

		r := NewNodeRegistry(nil)
		if err := r.Register(first, key); err != nil {
			rt.Fatalf("first register: %v", err)
		}

		var err error
		if delegated {
			err = r.Register(&keyed{fields: map[string]any{"id": key}}, ".id")
		} else {
			err = r.Register(second, key)
		}
		if KindOf(err) != KindIntegrity {
			rt.Fatalf("second register: got %v, want duplicate key", err)
		}

		v, _ := r.Get(key)
		if v != first || r.Count() != 1 {
			rt.Fatalf("stored %v (count %d), want %d", v, r.Count(), first)
		}
	})
}

func TestProperty_MetadataSpacesRejected(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.StringMatching(`[a-z]{1,8}`).Draw(rt, "a")
		b := rapid.StringMatching(`[a-z]{1,8}`).Draw(rt, "b")
		sep := rapid.SampledFrom([]string{" ", "\t", "  "}).Draw(rt, "sep")

		m := NewMetadataStore(nil)
		if _, err := m.Set(a+sep+b, 1, false); KindOf(err) != KindValidation {
			rt.Fatalf("Set(%q): got %v, want validation error", a+sep+b, err)
		}
		if m.Len() != 0 {
			rt.Fatalf("store mutated on failed Set")
		}
	})
}
