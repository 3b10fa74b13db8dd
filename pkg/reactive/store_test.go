package reactive

import (
	"reflect"
	"testing"
)

func TestStorePerKeyTracking(t *testing.T) {
	s := NewStore(map[string]any{"a": 1, "b": 2})
	runs := 0
	NewEffect(func() {
		_, _ = s.Get("a")
		runs++
	})

	s.Set("b", 3)
	if runs != 1 {
		t.Errorf("write to unread key re-ran effect: runs = %d", runs)
	}
	s.Set("a", 5)
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestStoreMissingKeyTracked(t *testing.T) {
	s := NewStore(nil)
	var seen any
	NewEffect(func() {
		seen, _ = s.Get("late")
	})

	s.Set("late", "here")
	if seen != "here" {
		t.Errorf("seen = %v, want here", seen)
	}
}

func TestStoreDeleteNotifies(t *testing.T) {
	s := NewStore(map[string]any{"x": 1})
	present := true
	NewEffect(func() {
		present = s.Has("x")
	})

	if !s.Delete("x") {
		t.Fatal("Delete(x) = false")
	}
	if present {
		t.Error("effect did not observe deletion")
	}
	if s.Delete("x") {
		t.Error("second Delete should report absence")
	}
}

func TestStoreKeysTracking(t *testing.T) {
	s := NewStore(map[string]any{"b": 1})
	var keys []string
	NewEffect(func() {
		keys = s.Keys()
	})

	s.Set("a", 0)
	if !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Errorf("keys = %v", keys)
	}

	s.Set("a", 7)
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	s := NewStore(map[string]any{"k": "v"})
	snap := s.Snapshot()
	snap["k"] = "changed"
	if v, _ := s.Peek("k"); v != "v" {
		t.Errorf("snapshot aliases store: %v", v)
	}
}

func TestStoreNewKeyNotifiesOnce(t *testing.T) {
	s := NewStore(nil)
	runs := 0
	NewEffect(func() {
		_ = s.Len()
		_, _ = s.Get("k")
		runs++
	})

	// A new key changes both the key slot and the key set; the listener
	// still runs once.
	s.Set("k", 1)
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}
