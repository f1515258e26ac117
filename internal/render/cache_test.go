package render

import (
	"sync"
	"testing"
)

func TestPoolPerOptionSet(t *testing.T) {
	ClearCache()
	defer ClearCache()

	base := DefaultOptions()
	tests := []struct {
		name  string
		other Options
		same  bool
	}{
		{"identical", DefaultOptions(), true},
		{"width", base.WithWidth(100), false},
		{"style", base.WithStyle(ThemeLight), false},
		{"emoji", base.WithEmoji(false), false},
		{"table links", base.WithInlineTableLinks(true), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := globalPool.getPool(base) == globalPool.getPool(tt.other); got != tt.same {
				t.Errorf("shared pool = %v, want %v", got, tt.same)
			}
		})
	}
}

func TestPoolReuse(t *testing.T) {
	ClearCache()
	defer ClearCache()

	doc := Format("Fly below **400 ft**")
	narrow := DefaultOptions().WithWidth(40)
	for i := 0; i < 3; i++ {
		if _, err := Terminal(doc, narrow); err != nil {
			t.Fatalf("Terminal: %v", err)
		}
	}
	if CacheSize() != 1 {
		t.Errorf("repeated renders with one option set should share a pool, got %d", CacheSize())
	}

	if _, err := Terminal(doc, narrow.WithWidth(100)); err != nil {
		t.Fatalf("Terminal: %v", err)
	}
	if CacheSize() != 2 {
		t.Errorf("a new width should add a pool, got %d", CacheSize())
	}

	ClearCache()
	if CacheSize() != 0 {
		t.Errorf("expected pool count 0 after clear, got %d", CacheSize())
	}
}

func TestPoolConcurrency(t *testing.T) {
	ClearCache()
	defer ClearCache()

	opts := DefaultOptions().WithStyle(ThemeNoTTY)
	answers := []Document{
		Format("Register at **FAADroneZone**"),
		Format("- pass the test\n- carry your certificate"),
		Format("See ```107.39``` for flights over people"),
	}

	var wg sync.WaitGroup
	errs := make(chan error, 60)
	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func(doc Document) {
			defer wg.Done()
			if _, err := Terminal(doc, opts); err != nil {
				errs <- err
			}
		}(answers[i%len(answers)])
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent render: %v", err)
	}
	if CacheSize() != 1 {
		t.Errorf("expected pool count 1 after concurrent access, got %d", CacheSize())
	}
}

func TestPoolPutNil(t *testing.T) {
	ClearCache()
	defer ClearCache()

	globalPool.put(DefaultOptions(), nil)
	if CacheSize() != 0 {
		t.Error("putting a nil renderer should not create a pool")
	}
}

func TestCreateRendererWithInvalidStyle(t *testing.T) {
	if _, err := createRenderer(DefaultOptions().WithStyle("invalid_style_path")); err == nil {
		t.Error("expected error for invalid style")
	}
}
