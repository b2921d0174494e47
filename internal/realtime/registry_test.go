package realtime

import (
	"reflect"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
)

func testClient(connID, userID string) *Client {
	return newClient(connID, &domain.User{ID: userID}, nil, zerolog.Nop())
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	alice := testClient("c1", "alice")
	online, targets, prev := r.Register(alice)
	if prev != nil {
		t.Fatalf("expected no displaced client, got %v", prev.ID())
	}
	if !reflect.DeepEqual(online, []string{"alice"}) {
		t.Fatalf("unexpected online set: %v", online)
	}
	if len(targets) != 1 || targets[0] != alice {
		t.Fatalf("expected alice as sole target")
	}

	got, ok := r.Lookup("alice")
	if !ok || got != alice {
		t.Fatalf("Lookup(alice) = %v, %v", got, ok)
	}
	if _, ok := r.Lookup("bob"); ok {
		t.Fatalf("Lookup(bob) should miss")
	}
}

func TestRegistry_SnapshotIsSorted(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"zed", "alice", "mike"} {
		r.Register(testClient("c-"+id, id))
	}

	want := []string{"alice", "mike", "zed"}
	if got := r.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Snapshot() = %v, want %v", got, want)
	}
}

func TestRegistry_RegisterOverwritesSameUser(t *testing.T) {
	r := NewRegistry()

	first := testClient("c1", "alice")
	second := testClient("c2", "alice")

	r.Register(first)
	online, _, prev := r.Register(second)

	if prev != first {
		t.Fatalf("expected first connection returned as displaced")
	}
	if !reflect.DeepEqual(online, []string{"alice"}) {
		t.Fatalf("user must appear once, got %v", online)
	}
	got, _ := r.Lookup("alice")
	if got != second {
		t.Fatalf("expected newest connection to win")
	}
}

func TestRegistry_UnregisterIsConnectionScoped(t *testing.T) {
	r := NewRegistry()

	first := testClient("c1", "alice")
	second := testClient("c2", "alice")
	r.Register(first)
	r.Register(second)

	// The stale connection's disconnect must not evict the newer one.
	if _, _, removed := r.Unregister("alice", first.ID()); removed {
		t.Fatalf("stale unregister must be a no-op")
	}
	if _, ok := r.Lookup("alice"); !ok {
		t.Fatalf("alice must remain registered")
	}

	online, _, removed := r.Unregister("alice", second.ID())
	if !removed {
		t.Fatalf("current unregister must remove the entry")
	}
	if len(online) != 0 {
		t.Fatalf("expected empty online set, got %v", online)
	}
	if _, ok := r.Lookup("alice"); ok {
		t.Fatalf("alice must be gone")
	}
}

func TestRegistry_UnregisterUnknownUser(t *testing.T) {
	r := NewRegistry()
	if _, _, removed := r.Unregister("ghost", "c1"); removed {
		t.Fatalf("unregistering an absent user must be a no-op")
	}
}

// A disconnect of an old connection racing the registration of a new one for
// the same user must always leave the new registration in place, whichever
// order the scheduler picks.
func TestRegistry_ReconnectRace(t *testing.T) {
	for i := 0; i < 100; i++ {
		r := NewRegistry()
		old := testClient("c-old", "alice")
		r.Register(old)

		fresh := testClient("c-new", "alice")

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Unregister("alice", old.ID())
		}()
		go func() {
			defer wg.Done()
			r.Register(fresh)
		}()
		wg.Wait()

		got, ok := r.Lookup("alice")
		if !ok || got != fresh {
			t.Fatalf("iteration %d: expected new connection registered, got %v, %v", i, got, ok)
		}
	}
}
