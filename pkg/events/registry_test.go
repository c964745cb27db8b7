package events

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	reg := New[string, string]()

	if reg == nil {
		t.Fatal("New() returned nil")
	}

	if reg.Len() != 0 {
		t.Errorf("New registry should be empty, got %d registrations", reg.Len())
	}
}

func TestRegister(t *testing.T) {
	t.Run("handler visible immediately", func(t *testing.T) {
		reg := New[string, string]()
		var got []string

		reg.Register("k1", func(v string) error {
			got = append(got, v)
			return nil
		})

		if err := reg.Publish("hello"); err != nil {
			t.Fatalf("Publish() error = %v, want nil", err)
		}

		if len(got) != 1 || got[0] != "hello" {
			t.Errorf("handler received %v, want [hello]", got)
		}
	})

	t.Run("last write wins on key collision", func(t *testing.T) {
		reg := New[string, string]()
		countA := 0
		countB := 0

		reg.Register("k1", func(string) error { countA++; return nil })
		reg.Register("k1", func(string) error { countB++; return nil })

		if reg.Len() != 1 {
			t.Fatalf("Len() = %d after overwrite, want 1", reg.Len())
		}

		if err := reg.Publish("x"); err != nil {
			t.Fatalf("Publish() error = %v, want nil", err)
		}

		if countA != 0 {
			t.Errorf("overwritten handler invoked %d times, want 0", countA)
		}
		if countB != 1 {
			t.Errorf("current handler invoked %d times, want 1", countB)
		}
	})

	t.Run("nil handler registers nothing", func(t *testing.T) {
		reg := New[string, string]()

		handle := reg.Register("k1", nil)

		if reg.Len() != 0 {
			t.Errorf("Len() = %d after nil registration, want 0", reg.Len())
		}

		// Cancelling the inert handle must not fault.
		handle.Cancel()
		handle.Cancel()
	})
}

func TestPublish(t *testing.T) {
	t.Run("delivers to every live handler exactly once", func(t *testing.T) {
		reg := New[string, string]()
		countA := 0
		countB := 0

		reg.Register("k1", func(v string) error {
			if v != "hello" {
				t.Errorf("handler A received %q, want %q", v, "hello")
			}
			countA++
			return nil
		})
		reg.Register("k2", func(v string) error {
			if v != "hello" {
				t.Errorf("handler B received %q, want %q", v, "hello")
			}
			countB++
			return nil
		})

		if err := reg.Publish("hello"); err != nil {
			t.Fatalf("Publish() error = %v, want nil", err)
		}

		if countA != 1 || countB != 1 {
			t.Errorf("invocation counts = (%d, %d), want (1, 1)", countA, countB)
		}
	})

	t.Run("empty registry is a no-op", func(t *testing.T) {
		reg := New[string, int]()

		if err := reg.Publish(42); err != nil {
			t.Errorf("Publish() on empty registry error = %v, want nil", err)
		}
	})
}

func TestCancel(t *testing.T) {
	t.Run("cancelled handler receives nothing", func(t *testing.T) {
		reg := New[string, string]()
		count := 0

		handle := reg.Register("k1", func(string) error { count++; return nil })
		handle.Cancel()

		if err := reg.Publish("hello"); err != nil {
			t.Fatalf("Publish() error = %v, want nil", err)
		}

		if count != 0 {
			t.Errorf("cancelled handler invoked %d times, want 0", count)
		}
		if reg.Len() != 0 {
			t.Errorf("Len() = %d after cancel, want 0", reg.Len())
		}
	})

	t.Run("double cancel is a no-op", func(t *testing.T) {
		reg := New[string, string]()

		handle := reg.Register("k1", func(string) error { return nil })
		handle.Cancel()
		handle.Cancel()

		if reg.Len() != 0 {
			t.Errorf("Len() = %d, want 0", reg.Len())
		}
	})

	t.Run("cancel after overwrite removes the current occupant", func(t *testing.T) {
		// Documented hazard: the handle cancels by key, so once the key
		// has been overwritten it removes the newer registration.
		reg := New[string, string]()
		count := 0

		first := reg.Register("k1", func(string) error { return nil })
		reg.Register("k1", func(string) error { count++; return nil })

		first.Cancel()

		if reg.Len() != 0 {
			t.Fatalf("Len() = %d after cancel-by-key, want 0", reg.Len())
		}

		if err := reg.Publish("x"); err != nil {
			t.Fatalf("Publish() error = %v, want nil", err)
		}
		if count != 0 {
			t.Errorf("newer handler invoked %d times after cancel, want 0", count)
		}
	})

	t.Run("cancel of superseded-then-cancelled key is a no-op", func(t *testing.T) {
		reg := New[string, string]()

		first := reg.Register("k1", func(string) error { return nil })
		second := reg.Register("k1", func(string) error { return nil })

		second.Cancel()
		first.Cancel()

		if reg.Len() != 0 {
			t.Errorf("Len() = %d, want 0", reg.Len())
		}
	})
}

func TestLiveCount(t *testing.T) {
	reg := New[string, int]()

	handles := make([]*Registration, 0, 10)
	for i := 0; i < 10; i++ {
		handles = append(handles, reg.Register(fmt.Sprintf("k%d", i), func(int) error { return nil }))
	}

	if reg.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", reg.Len())
	}

	for i := 0; i < 4; i++ {
		handles[i].Cancel()
	}

	if reg.Len() != 6 {
		t.Errorf("Len() = %d after 4 cancels, want 6", reg.Len())
	}
}

func TestPublishSnapshot(t *testing.T) {
	t.Run("handler registering during publish", func(t *testing.T) {
		reg := New[string, string]()
		lateCount := 0

		reg.Register("k1", func(string) error {
			reg.Register("late", func(string) error { lateCount++; return nil })
			return nil
		})

		if err := reg.Publish("hello"); err != nil {
			t.Fatalf("Publish() error = %v, want nil", err)
		}

		// The in-flight publish delivers against its snapshot; the new
		// handler only sees later publishes.
		if lateCount != 0 {
			t.Errorf("late handler invoked %d times during its own registration's publish, want 0", lateCount)
		}

		if err := reg.Publish("again"); err != nil {
			t.Fatalf("Publish() error = %v, want nil", err)
		}
		if lateCount != 1 {
			t.Errorf("late handler invoked %d times after second publish, want 1", lateCount)
		}
	})

	t.Run("handler cancelling itself during publish", func(t *testing.T) {
		reg := New[string, string]()
		count := 0

		var handle *Registration
		handle = reg.Register("k1", func(string) error {
			count++
			handle.Cancel()
			return nil
		})

		if err := reg.Publish("one"); err != nil {
			t.Fatalf("Publish() error = %v, want nil", err)
		}
		if err := reg.Publish("two"); err != nil {
			t.Fatalf("Publish() error = %v, want nil", err)
		}

		if count != 1 {
			t.Errorf("self-cancelling handler invoked %d times, want 1", count)
		}
	})
}

func TestKeysHasClear(t *testing.T) {
	reg := New[string, int]()

	reg.Register("alpha", func(int) error { return nil })
	reg.Register("bravo", func(int) error { return nil })

	if !reg.Has("alpha") || !reg.Has("bravo") {
		t.Error("Has() should report registered keys")
	}
	if reg.Has("charlie") {
		t.Error("Has() should not report unregistered keys")
	}

	keys := reg.Keys()
	if len(keys) != 2 {
		t.Errorf("Keys() returned %d keys, want 2", len(keys))
	}

	reg.Clear()

	if reg.Len() != 0 {
		t.Errorf("Len() = %d after Clear(), want 0", reg.Len())
	}
	if reg.Has("alpha") {
		t.Error("Has() should not report keys after Clear()")
	}
}

func TestIntKeys(t *testing.T) {
	reg := New[int, string]()
	count := 0

	reg.Register(7, func(string) error { count++; return nil })

	if err := reg.Publish("hello"); err != nil {
		t.Fatalf("Publish() error = %v, want nil", err)
	}
	if count != 1 {
		t.Errorf("handler invoked %d times, want 1", count)
	}
}

func TestConcurrency(t *testing.T) {
	reg := New[string, string]()
	const goroutines = 10
	const handlersPerGoroutine = 100

	var delivered atomic.Int64

	// Concurrent registrations under distinct keys.
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for g := 0; g < goroutines; g++ {
		go func(goroutineID int) {
			defer wg.Done()
			for i := 0; i < handlersPerGoroutine; i++ {
				key := fmt.Sprintf("g%d_h%d", goroutineID, i)
				reg.Register(key, func(string) error {
					delivered.Add(1)
					return nil
				})
			}
		}(g)
	}

	wg.Wait()

	expected := goroutines * handlersPerGoroutine
	if reg.Len() != expected {
		t.Fatalf("Len() after concurrent registration = %d, want %d", reg.Len(), expected)
	}

	if err := reg.Publish("hello"); err != nil {
		t.Fatalf("Publish() error = %v, want nil", err)
	}

	if got := delivered.Load(); got != int64(expected) {
		t.Errorf("deliveries = %d, want %d", got, expected)
	}

	// Concurrent publish and cancel must not race into a corrupt store.
	handles := make([]*Registration, 0, expected)
	for _, key := range reg.Keys() {
		key := key
		handles = append(handles, reg.Register(key, func(string) error {
			delivered.Add(1)
			return nil
		}))
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_ = reg.Publish("churn")
		}
	}()
	go func() {
		defer wg.Done()
		for _, handle := range handles {
			handle.Cancel()
		}
	}()
	wg.Wait()

	if reg.Len() != 0 {
		t.Errorf("Len() after cancelling every handle = %d, want 0", reg.Len())
	}
}

func BenchmarkRegister(b *testing.B) {
	reg := New[string, int]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.Register(fmt.Sprintf("k%d", i), func(int) error { return nil })
	}
}

func BenchmarkPublish(b *testing.B) {
	reg := New[string, int]()
	for i := 0; i < 100; i++ {
		reg.Register(fmt.Sprintf("k%d", i), func(int) error { return nil })
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = reg.Publish(i)
	}
}

// Example usage
func ExampleRegistry() {
	reg := New[string, string]()

	handle := reg.Register("greeter", func(msg string) error {
		fmt.Println("received:", msg)
		return nil
	})

	_ = reg.Publish("hello")

	handle.Cancel()
	_ = reg.Publish("nobody hears this")

	// Output:
	// received: hello
}
