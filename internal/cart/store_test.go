package cart

import (
	"encoding/json"
	"reflect"
	"testing"

	"fiesta-storefront/internal/domain"
	"fiesta-storefront/internal/kvstore"
)

func snap(id string) domain.ProductSnapshot {
	return domain.ProductSnapshot{ID: id, Title: "Item " + id, Slug: "item-" + id, Price: 100}
}

func TestAddItemMergesByProductID(t *testing.T) {
	s := New(kvstore.NewMemory(), nil)
	s.AddItem(snap("p1"), 2)
	s.AddItem(snap("p1"), 3)

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	s := New(kvstore.NewMemory(), nil)
	s.AddItem(snap("p1"), 1)
	s.AddItem(snap("p2"), 1)
	s.AddItem(snap("p1"), 4)

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(items))
	}
	if items[0].ProductID != "p1" || items[1].ProductID != "p2" {
		t.Fatalf("merge changed ordering: %+v", items)
	}
}

func TestNoDuplicateProductIDs(t *testing.T) {
	s := New(kvstore.NewMemory(), nil)
	ops := []func(){
		func() { s.AddItem(snap("a"), 1) },
		func() { s.AddItem(snap("b"), 2) },
		func() { s.AddItem(snap("a"), 1) },
		func() { s.UpdateQuantity("b", 7) },
		func() { s.RemoveItem("missing") },
		func() { s.AddItem(snap("c"), 1) },
		func() { s.AddItem(snap("b"), 1) },
	}
	for _, op := range ops {
		op()
		seen := map[string]bool{}
		for _, item := range s.Items() {
			if seen[item.ProductID] {
				t.Fatalf("duplicate productId %s", item.ProductID)
			}
			seen[item.ProductID] = true
		}
	}
}

func TestUpdateQuantityBelowOneRemoves(t *testing.T) {
	for _, q := range []int{0, -1} {
		s := New(kvstore.NewMemory(), nil)
		s.AddItem(snap("p1"), 2)
		s.UpdateQuantity("p1", q)
		if len(s.Items()) != 0 {
			t.Fatalf("quantity %d should remove the entry", q)
		}
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	s := New(kvstore.NewMemory(), nil)
	s.AddItem(snap("p1"), 1)
	s.RemoveItem("other")
	if len(s.Items()) != 1 {
		t.Fatalf("remove of absent id must not change the cart")
	}
}

func TestTotalItemsSumsQuantities(t *testing.T) {
	s := New(kvstore.NewMemory(), nil)
	s.AddItem(snap("p1"), 2)
	s.AddItem(snap("p2"), 3)
	s.UpdateQuantity("p1", 4)
	if got := s.TotalItems(); got != 7 {
		t.Fatalf("expected total 7, got %d", got)
	}
	s.RemoveItem("p2")
	if got := s.TotalItems(); got != 4 {
		t.Fatalf("expected total 4, got %d", got)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	s := New(kvstore.NewMemory(), nil)
	s.AddItem(snap("p1"), 2)
	s.Clear()
	if len(s.Items()) != 0 || s.TotalItems() != 0 {
		t.Fatalf("clear left items behind")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	kv := kvstore.NewMemory()
	s := New(kv, nil)
	s.AddItem(snap("p1"), 2)
	s.AddItem(snap("p2"), 1)

	// Simulate a page refresh: a fresh store over the same bridge.
	reloaded := New(kv, nil)
	want := s.Items()
	got := reloaded.Items()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reloaded cart differs: %+v vs %+v", got, want)
	}
}

func TestCorruptStoredCartYieldsEmpty(t *testing.T) {
	kv := kvstore.NewMemory()
	kv.Set(kvstore.KeyCart, []byte(`{"not":"an array"`))
	s := New(kv, nil)
	if len(s.Items()) != 0 {
		t.Fatalf("corrupt payload must hydrate to an empty cart")
	}
}

func TestMutationsPersistImmediately(t *testing.T) {
	kv := kvstore.NewMemory()
	s := New(kv, nil)
	s.AddItem(snap("p1"), 1)

	raw, ok := kv.Get(kvstore.KeyCart)
	if !ok {
		t.Fatalf("expected persisted cart after mutation")
	}
	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("persisted payload not valid JSON: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != "p1" {
		t.Fatalf("unexpected persisted items: %+v", items)
	}
}

func TestSubscribeNotifiesAndCancels(t *testing.T) {
	s := New(kvstore.NewMemory(), nil)
	var calls int
	var last []domain.CartItem
	cancel := s.Subscribe(func(items []domain.CartItem) {
		calls++
		last = items
	})

	s.AddItem(snap("p1"), 2)
	if calls != 1 || len(last) != 1 || last[0].Quantity != 2 {
		t.Fatalf("subscriber not notified with snapshot: calls=%d last=%+v", calls, last)
	}

	cancel()
	s.AddItem(snap("p2"), 1)
	if calls != 1 {
		t.Fatalf("cancelled subscriber still notified")
	}
}
