package concurrent

import "testing"

func TestMap_StoreLoadDelete(t *testing.T) {
	m := NewMap[string, int]()

	m.Store("a", 1)
	if v, ok := m.Load("a"); !ok || v != 1 {
		t.Fatalf("expected a=1, got %v, %v", v, ok)
	}

	if m.Length() != 1 {
		t.Fatalf("expected length 1, got %d", m.Length())
	}

	m.Delete("a")
	if _, ok := m.Load("a"); ok {
		t.Fatalf("expected a to be deleted")
	}
	if m.Length() != 0 {
		t.Fatalf("expected length 0 after delete, got %d", m.Length())
	}
}

func TestMap_Range(t *testing.T) {
	m := NewMap[string, int]()
	m.Store("a", 1)
	m.Store("b", 2)

	seen := map[string]int{}
	m.Range(func(k string, v int) bool {
		seen[k] = v
		return true
	})

	if len(seen) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(seen))
	}
}
