package platform

import (
	"testing"
	"time"
)

func TestOptionsTimeout(t *testing.T) {
	if got := (Options{}).timeout(); got != DefaultTimeout {
		t.Fatalf("expected default timeout, got %v", got)
	}
	if got := (Options{Timeout: 2 * time.Second}).timeout(); got != 2*time.Second {
		t.Fatalf("expected override, got %v", got)
	}
}
