package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"swarmisle/internal/sim/tuning"
	"swarmisle/internal/sim/world"
	"swarmisle/internal/sim/world/kernel/model"
)

func sampleEngine(t *testing.T) *world.Engine {
	t.Helper()
	typ := model.TypeG
	hp := 80.0
	rec := world.Record{
		Meta: world.Meta{Seed: 5},
		Agents: []world.AgentRecord{{
			ID:     "g1",
			Type:   &typ,
			Pos:    &model.Vec2{X: -4, Y: 0.5},
			Vitals: &world.VitalsRecord{HP: &hp},
			Status: model.StatusAlive,
		}},
	}
	e, err := world.Initialize(rec, tuning.Defaults())
	require.NoError(t, err)
	for i := 0; i < 30; i++ {
		require.NoError(t, e.Step())
	}
	return e
}

func TestSnapshot_RoundTripResumesExactly(t *testing.T) {
	e := sampleEngine(t)
	path := PathFor(t.TempDir(), e.CurrentTick())
	require.NoError(t, WriteSnapshot(path, e.Record()))

	h, rec, err := ReadSnapshot(path)
	require.NoError(t, err)
	require.Equal(t, Version, h.Version)
	require.Equal(t, uint64(30), h.Tick)
	require.Equal(t, 1, h.Agents)

	resumed, err := world.Initialize(rec, tuning.Defaults())
	require.NoError(t, err)
	require.Equal(t, e.Digest(), resumed.Digest())
}

func TestLatest_PicksHighestTick(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, "", Latest(dir))
	for _, tick := range []uint64{200, 1000, 40} {
		require.NoError(t, os.WriteFile(PathFor(dir, tick), []byte("x"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))
	require.Equal(t, PathFor(dir, 1000), Latest(dir))
}

func TestReadRaw_PlainJSONAndSnapshot(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "world.json")
	require.NoError(t, os.WriteFile(plain, []byte(`{"meta":{},"agents":[]}`), 0o644))
	raw, err := ReadRaw(plain)
	require.NoError(t, err)
	require.JSONEq(t, `{"meta":{},"agents":[]}`, string(raw))

	e := sampleEngine(t)
	snap := PathFor(dir, e.CurrentTick())
	require.NoError(t, WriteSnapshot(snap, e.Record()))
	raw, err = ReadRaw(snap)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"id":"g1"`)
}
