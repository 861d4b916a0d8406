package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yuqie6/stresssense/internal/repository"
	"github.com/yuqie6/stresssense/internal/schema"
	"github.com/yuqie6/stresssense/internal/service"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchHistoryRerendersOnAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stress_data.csv")
	store := repository.NewCSVStore(path)
	if err := store.EnsureFile(); err != nil {
		t.Fatalf("EnsureFile error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	out := &lockedBuffer{}
	done := make(chan error, 1)
	go func() { done <- watchHistory(ctx, out, path, service.NewHistoryService(store).Previews) }()

	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(out.String(), "正在监听") {
		if time.Now().After(deadline) {
			t.Fatalf("watcher did not start")
		}
		time.Sleep(10 * time.Millisecond)
	}

	rec := schema.DailyRecord{Date: "2026-05-05", Rest: 24, Status: schema.StatusBalanced, Summary: "ok"}
	if err := store.Append(context.Background(), rec); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	for !strings.Contains(out.String(), "2026-05-05") {
		if time.Now().After(deadline) {
			t.Fatalf("history not re-rendered:\n%s", out.String())
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watchHistory error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("watchHistory did not stop")
	}
}
