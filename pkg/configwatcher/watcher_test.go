package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"caseforge_backend/internal/config"
)

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte("admin:\n  email: a@example.com\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	load := func(string) (*config.Config, error) {
		return &config.Config{Admin: config.AdminConfig{Email: "b@example.com"}}, nil
	}
	reloaded := make(chan *config.Config, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, file, load, func(c *config.Config) { reloaded <- c })
	}()

	// 等待监听建立后再写入
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(file, []byte("admin:\n  email: b@example.com\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-reloaded:
		if c.Admin.Email != "b@example.com" {
			t.Errorf("reloaded admin = %q", c.Admin.Email)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() = %v", err)
	}
}
