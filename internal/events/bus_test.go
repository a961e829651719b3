package events

import "testing"

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := New()
	var order []string
	bus.Subscribe(func(e Event) { order = append(order, "first:"+e.EventName()) })
	bus.Subscribe(func(e Event) { order = append(order, "second:"+e.EventName()) })

	bus.Publish(CartUpdated{})

	if len(order) != 2 || order[0] != "first:cartUpdated" || order[1] != "second:cartUpdated" {
		t.Fatalf("unexpected delivery: %v", order)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := New()
	calls := 0
	unsub := bus.Subscribe(func(Event) { calls++ })
	bus.Publish(CartUpdated{})
	unsub()
	bus.Publish(CartUpdated{})
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestBusTypedPayload(t *testing.T) {
	bus := New()
	var got []int64
	bus.Subscribe(func(e Event) {
		if w, ok := e.(WishlistUpdated); ok {
			got = w.ProductIDs
		}
	})
	bus.Publish(WishlistUpdated{ProductIDs: []int64{3, 9}})
	if len(got) != 2 || got[0] != 3 || got[1] != 9 {
		t.Fatalf("unexpected payload: %v", got)
	}
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	bus := New()
	bus.Publish(Toast{Level: "success", Message: "ok"})
}
