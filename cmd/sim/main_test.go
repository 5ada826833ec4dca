package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"swarmisle/internal/persistence/snapshot"
	"swarmisle/internal/protocol"
	"swarmisle/internal/sim/world"
)

type countingTickLogger struct{ n int }

func (c *countingTickLogger) WriteTick(world.TickLogEntry) error { c.n++; return nil }

func TestMultiTickLogger_SkipsNil(t *testing.T) {
	a, b := &countingTickLogger{}, &countingTickLogger{}
	m := multiTickLogger{a, nil, indexTickLogger(nil), b, (*framePublisher)(nil)}
	require.NoError(t, m.WriteTick(world.TickLogEntry{Tick: 1}))
	require.Equal(t, 1, a.n)
	require.Equal(t, 1, b.n)
}

func TestResolveWorldPath(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, "x.json", resolveWorldPath(" x.json ", dir))
	require.Equal(t, filepath.Join("configs", "world.example.json"), resolveWorldPath("", dir))

	p := snapshot.PathFor(dir, 400)
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	require.Equal(t, p, resolveWorldPath("", dir))
}

func TestLoadWorld_SchemaRejection(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"meta":{},"agents":[{"id":"a"}]}`), 0o644))
	_, err := loadWorld(p)
	var pe *protocol.Error
	require.ErrorAs(t, err, &pe)
	require.Equal(t, protocol.ErrSchema, pe.Code)
}

func TestLoadWorld_ExampleWorldInitializes(t *testing.T) {
	rec, err := loadWorld(filepath.Join("..", "..", "configs", "world.example.json"))
	require.NoError(t, err)
	require.NotEmpty(t, rec.Agents)
}
