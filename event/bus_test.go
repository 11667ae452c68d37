package event

import "testing"

func TestBus_EmitFanOut(t *testing.T) {
	bus := NewBus()

	payload := &struct{ n int }{n: 42}
	var order []int

	bus.Subscribe("custom", func(p any) {
		if p != payload {
			t.Errorf("first subscriber: payload reference changed")
		}
		order = append(order, 1)
	})
	bus.Subscribe("custom", func(p any) {
		if p != payload {
			t.Errorf("second subscriber: payload reference changed")
		}
		order = append(order, 2)
	})

	bus.Emit("custom", payload)

	if len(order) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(order))
	}
	if order[0] != 1 || order[1] != 2 {
		t.Errorf("expected delivery in subscription order, got %v", order)
	}
}

func TestBus_EmitNoSubscribers(t *testing.T) {
	bus := NewBus()
	// Must be a silent no-op.
	bus.Emit("nobody-home", "payload")
}

func TestBus_UnsubscribeIdempotent(t *testing.T) {
	bus := NewBus()

	calls := 0
	unsub := bus.Subscribe("ev", func(any) { calls++ })

	bus.Emit("ev", nil)
	if calls != 1 {
		t.Fatalf("expected 1 call before unsubscribe, got %d", calls)
	}

	unsub()
	unsub()
	unsub()

	bus.Emit("ev", nil)
	if calls != 1 {
		t.Errorf("expected no calls after unsubscribe, got %d total", calls)
	}
	if n := bus.SubscriberCount("ev"); n != 0 {
		t.Errorf("expected 0 subscribers, got %d", n)
	}
}

func TestBus_UnsubscribeRemovesExactlyOne(t *testing.T) {
	bus := NewBus()

	calls := 0
	fn := func(any) { calls++ }
	first := bus.Subscribe("ev", fn)
	bus.Subscribe("ev", fn)

	first()
	first() // second call must not remove the remaining registration

	bus.Emit("ev", nil)
	if calls != 1 {
		t.Errorf("expected remaining registration to fire once, got %d", calls)
	}
}

func TestBus_ReentrantEmit(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe("outer", func(any) {
		order = append(order, "outer-start")
		bus.Emit("inner", nil)
		order = append(order, "outer-end")
	})
	bus.Subscribe("inner", func(any) {
		order = append(order, "inner")
	})

	bus.Emit("outer", nil)

	want := []string{"outer-start", "inner", "outer-end"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("depth-first order broken at %d: expected %v, got %v", i, want, order)
		}
	}
}

func TestBus_SubscribeDuringEmit(t *testing.T) {
	bus := NewBus()

	lateCalls := 0
	bus.Subscribe("ev", func(any) {
		bus.Subscribe("ev", func(any) { lateCalls++ })
	})

	bus.Emit("ev", nil)
	if lateCalls != 0 {
		t.Errorf("subscriber added during emit must not receive that emit, got %d calls", lateCalls)
	}

	bus.Emit("ev", nil)
	if lateCalls != 1 {
		t.Errorf("subscriber added during previous emit should fire once now, got %d", lateCalls)
	}
}

func TestListen_LatestHandlerWins(t *testing.T) {
	bus := NewBus()

	var got []string
	l := Listen(bus, "ev", func(any) { got = append(got, "first") })

	bus.Emit("ev", nil)

	l.Set(func(any) { got = append(got, "second") })
	bus.Emit("ev", nil)

	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("expected [first second], got %v", got)
	}
	if n := bus.SubscriberCount("ev"); n != 1 {
		t.Errorf("handler swap must not resubscribe: expected 1 subscription, got %d", n)
	}
}

func TestListener_Close(t *testing.T) {
	bus := NewBus()

	calls := 0
	l := Listen(bus, "ev", func(any) { calls++ })
	l.Close()
	l.Close()

	bus.Emit("ev", nil)
	if calls != 0 {
		t.Errorf("expected no delivery after Close, got %d", calls)
	}
}
