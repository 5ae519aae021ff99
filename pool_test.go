package html2pdf

import (
	"context"
	"runtime"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// NewConverterPool
// ---------------------------------------------------------------------------

func TestNewConverterPool_SizeClamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"negative", -1, 1},
		{"zero", 0, 1},
		{"one", 1, 1},
		{"many", 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewConverterPool(tt.n)
			defer func() { _ = p.Close() }()

			if got := p.Size(); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Acquire / Release
// ---------------------------------------------------------------------------

func TestConverterPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	p := NewConverterPool(2, WithProvider(&mockProvider{surface: &mockSurface{}}))
	defer func() { _ = p.Close() }()

	c1 := p.Acquire()
	if c1 == nil {
		t.Fatal("Acquire returned nil")
	}
	c2 := p.Acquire()
	if c2 == nil {
		t.Fatal("second Acquire returned nil")
	}
	if c1 == c2 {
		t.Error("pool handed out the same converter twice without a release")
	}

	p.Release(c1)
	c3 := p.Acquire()
	if c3 != c1 {
		t.Error("released converter was not reused")
	}
	p.Release(c2)
	p.Release(c3)
}

func TestConverterPool_AcquireBlocksAtCapacity(t *testing.T) {
	t.Parallel()

	p := NewConverterPool(1, WithProvider(&mockProvider{surface: &mockSurface{}}))
	defer func() { _ = p.Close() }()

	c := p.Acquire()

	acquired := make(chan *Converter)
	go func() {
		acquired <- p.Acquire()
	}()

	select {
	case <-acquired:
		t.Fatal("Acquire did not block while the pool was exhausted")
	default:
	}

	p.Release(c)
	got := <-acquired
	if got != c {
		t.Error("blocked Acquire did not receive the released converter")
	}
	p.Release(got)
}

func TestConverterPool_PooledConvertersWork(t *testing.T) {
	t.Parallel()

	p := NewConverterPool(2, WithProvider(&mockProvider{surface: &mockSurface{}}))
	defer func() { _ = p.Close() }()

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := p.Acquire()
			defer p.Release(c)
			if _, err := c.Convert(context.Background(), Request{Content: "<p>x</p>"}); err != nil {
				t.Errorf("pooled Convert failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

// ---------------------------------------------------------------------------
// Close
// ---------------------------------------------------------------------------

func TestConverterPool_CloseIdempotent(t *testing.T) {
	t.Parallel()

	p := NewConverterPool(2)
	if err := p.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}

func TestConverterPool_ReleaseAfterCloseDoesNotPanic(t *testing.T) {
	t.Parallel()

	p := NewConverterPool(1, WithProvider(&mockProvider{surface: &mockSurface{}}))
	c := p.Acquire()
	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// A converter still out when the pool closes is simply dropped.
	p.Release(c)
}

// ---------------------------------------------------------------------------
// ResolvePoolSize
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	t.Run("explicit value wins", func(t *testing.T) {
		t.Parallel()
		if got := ResolvePoolSize(3); got != 3 {
			t.Errorf("ResolvePoolSize(3) = %d, want 3", got)
		}
	})

	t.Run("auto stays in bounds", func(t *testing.T) {
		t.Parallel()
		got := ResolvePoolSize(0)
		if got < MinPoolSize || got > MaxPoolSize {
			t.Errorf("ResolvePoolSize(0) = %d, want %d..%d", got, MinPoolSize, MaxPoolSize)
		}
	})

	t.Run("auto tracks GOMAXPROCS", func(t *testing.T) {
		t.Parallel()
		want := runtime.GOMAXPROCS(0) / 2
		if want < MinPoolSize {
			want = MinPoolSize
		}
		if want > MaxPoolSize {
			want = MaxPoolSize
		}
		if got := ResolvePoolSize(0); got != want {
			t.Errorf("ResolvePoolSize(0) = %d, want %d", got, want)
		}
	})
}
