package cart

import (
	"sync"
	"testing"
)

func TestRegistryReturnsSameSession(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	a := reg.SessionFor("sess-1")
	b := reg.SessionFor("sess-1")
	if a != b {
		t.Fatal("expected the same session for the same id")
	}
	if reg.SessionFor("sess-2") == a {
		t.Fatal("expected distinct sessions for distinct ids")
	}
}

func TestRegistryDrop(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	sess := reg.SessionFor("sess-1")
	sess.With(func(c *Store) {
		c.AddItem(Item{MenuItemID: "item-1", Price: price("1")})
	})

	reg.Drop("sess-1")
	if got := reg.SessionFor("sess-1").TotalItems(); got != 0 {
		t.Fatalf("expected a fresh cart after drop, got %d items", got)
	}
}

func TestSessionSerializesMutation(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	sess := reg.SessionFor("sess-1")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess.With(func(c *Store) {
				c.AddItem(Item{MenuItemID: "item-1", Price: price("1")})
			})
		}()
	}
	wg.Wait()

	if got := sess.TotalItems(); got != 50 {
		t.Fatalf("expected 50 units, got %d", got)
	}
}
