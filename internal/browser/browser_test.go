package browser

import (
	"testing"
	"time"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if !opts.Headless {
		t.Error("expected headless mode by default")
	}

	if opts.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", opts.Timeout)
	}

	if opts.UserAgent == "" {
		t.Error("expected a default user agent")
	}

	if opts.ViewportWidth != 1920 || opts.ViewportHeight != 1080 {
		t.Errorf("unexpected viewport %dx%d", opts.ViewportWidth, opts.ViewportHeight)
	}

	if opts.ExtraHeaders["Accept-Language"] == "" {
		t.Error("expected Accept-Language header")
	}
}
