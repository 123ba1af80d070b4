package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetOrLoad_HitAndExpiry(t *testing.T) {
	c := New()
	calls := 0
	load := func() ([]byte, error) {
		calls++
		return []byte("page"), nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad("/blog", 50*time.Millisecond, load)
		if err != nil || string(v) != "page" {
			t.Fatalf("GetOrLoad() = %q, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("Expected 1 load before expiry, got %d", calls)
	}

	time.Sleep(80 * time.Millisecond)
	if _, err := c.GetOrLoad("/blog", time.Hour, load); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("Expected reload after expiry, got %d loads", calls)
	}
}

func TestGetOrLoad_HitsDoNotExtendTTL(t *testing.T) {
	c := New()
	calls := 0
	load := func() ([]byte, error) {
		calls++
		return []byte("page"), nil
	}

	deadline := time.Now().Add(120 * time.Millisecond)
	for time.Now().Before(deadline) {
		if _, err := c.GetOrLoad("/", 60*time.Millisecond, load); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if calls < 2 {
		t.Errorf("Expected a reload while being served continuously, got %d loads", calls)
	}
}

func TestGetOrLoad_ErrorsAreNotCached(t *testing.T) {
	c := New()
	boom := errors.New("cms down")

	if _, err := c.GetOrLoad("/", time.Hour, func() ([]byte, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("GetOrLoad() error = %v, want %v", err, boom)
	}
	if c.Len() != 0 {
		t.Error("Failed load must not be stored")
	}

	v, err := c.GetOrLoad("/", time.Hour, func() ([]byte, error) { return []byte("ok"), nil })
	if err != nil || string(v) != "ok" {
		t.Errorf("GetOrLoad() after failure = %q, %v", v, err)
	}
}

func TestGetOrLoad_CoalescesConcurrentMisses(t *testing.T) {
	c := New()
	var loads atomic.Int32
	release := make(chan struct{})

	const callers = 10
	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrLoad("/diensten", time.Minute, func() ([]byte, error) {
				loads.Add(1)
				<-release
				return []byte("diensten"), nil
			})
			if err != nil {
				t.Errorf("GetOrLoad() error = %v", err)
				return
			}
			results[i] = string(v)
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := loads.Load(); n != 1 {
		t.Errorf("Expected 1 load for concurrent misses, got %d", n)
	}
	for i, r := range results {
		if r != "diensten" {
			t.Errorf("results[%d] = %q", i, r)
		}
	}
}

func TestStart_RemovesExpiredEntries(t *testing.T) {
	c := New()
	go c.Start()
	t.Cleanup(c.Stop)

	value := func() ([]byte, error) { return []byte("x"), nil }
	c.GetOrLoad("/kort", 20*time.Millisecond, value)
	c.GetOrLoad("/lang", time.Hour, value)

	deadline := time.Now().Add(2 * time.Second)
	for c.Len() != 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after the short entry expired", c.Len())
	}
}
