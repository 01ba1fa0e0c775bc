package scene

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: first\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loaded := make(chan *Scene, 8)
	require.NoError(t, Watch(ctx, path, nil, func(s *Scene) { loaded <- s }))

	// A broken edit is skipped; the next good one comes through.
	require.NoError(t, os.WriteFile(path, []byte("triangles: [\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("name: second\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-loaded:
			if s.Name == "second" {
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "scene.yaml"), nil, func(*Scene) {})
	require.Error(t, err)
}
