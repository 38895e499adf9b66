package friendboard

import (
	"context"
	"errors"
	"testing"
)

func TestInMemoryProviderConditionalWrites(t *testing.T) {
	provider := NewInMemoryProvider()
	inst := WidgetInstance{ID: "w1", FriendID: "friend-1", Type: TypePixelArt}

	rev, err := provider.SaveInstance(context.Background(), inst, 0)
	if err != nil {
		t.Fatalf("SaveInstance returned error: %v", err)
	}
	if rev != 1 {
		t.Fatalf("expected revision 1, got %d", rev)
	}

	if _, err := provider.SaveInstance(context.Background(), inst, 0); !errors.Is(err, ErrConflict) {
		t.Fatalf("stale revision: expected ErrConflict, got %v", err)
	}

	snap, err := provider.LoadInstances(context.Background(), "friend-1")
	if err != nil {
		t.Fatalf("LoadInstances returned error: %v", err)
	}
	if snap.Revision != 1 || len(snap.Instances) != 1 {
		t.Fatalf("expected one instance at revision 1, got %#v", snap)
	}

	if _, err := provider.DeleteInstance(context.Background(), "w1", 0); !errors.Is(err, ErrConflict) {
		t.Fatalf("stale delete: expected ErrConflict, got %v", err)
	}
	if _, err := provider.DeleteInstance(context.Background(), "w1", snap.Revision); err != nil {
		t.Fatalf("DeleteInstance returned error: %v", err)
	}
	if _, err := provider.DeleteInstance(context.Background(), "w1", 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing instance: expected ErrNotFound, got %v", err)
	}
}

func TestInMemoryProviderRevisionsArePerFriend(t *testing.T) {
	provider := NewInMemoryProvider()
	if _, err := provider.SaveInstance(context.Background(), WidgetInstance{ID: "a", FriendID: "friend-1"}, 0); err != nil {
		t.Fatalf("SaveInstance returned error: %v", err)
	}
	// friend-2 still starts at revision zero.
	if _, err := provider.SaveInstance(context.Background(), WidgetInstance{ID: "b", FriendID: "friend-2"}, 0); err != nil {
		t.Fatalf("SaveInstance for second friend returned error: %v", err)
	}
}

func TestInMemoryProviderSaveOrder(t *testing.T) {
	provider := NewInMemoryProvider()
	rev := Revision(0)
	for _, id := range []string{"a", "b", "c"} {
		next, err := provider.SaveInstance(context.Background(), WidgetInstance{ID: id, FriendID: "friend-1"}, rev)
		if err != nil {
			t.Fatalf("seed %s returned error: %v", id, err)
		}
		rev = next
	}
	if _, err := provider.SaveOrder(context.Background(), "friend-1", []string{"c", "a", "b"}, rev); err != nil {
		t.Fatalf("SaveOrder returned error: %v", err)
	}
	snap, err := provider.LoadInstances(context.Background(), "friend-1")
	if err != nil {
		t.Fatalf("LoadInstances returned error: %v", err)
	}
	orders := map[string]int{}
	for _, inst := range snap.Instances {
		orders[inst.ID] = inst.Order
	}
	if orders["c"] != 0 || orders["a"] != 1 || orders["b"] != 2 {
		t.Fatalf("expected positions c=0 a=1 b=2, got %#v", orders)
	}
}
