package observer

import (
	"swarmisle/internal/sim/world"
	"swarmisle/internal/sim/world/kernel/model"
	"swarmisle/internal/sim/world/terrain/gen"
)

const Version = "1"

type AgentView struct {
	ID     string       `json:"id"`
	Type   model.Type   `json:"type"`
	Pos    model.Vec2   `json:"pos"`
	Status model.Status `json:"status"`
	HP     float64      `json:"hp"`
	XP     float64      `json:"xp"`
}

type Frame struct {
	Type      string        `json:"type"`
	Tick      uint64        `json:"tick"`
	Clock     float64       `json:"clock"`
	Week      int           `json:"week"`
	Agents    []AgentView   `json:"agents"`
	Food      []model.Food  `json:"food"`
	Centroids [3]model.Vec2 `json:"centroids"`
}

func FrameFromEngine(e *world.Engine) Frame {
	agents := e.Agents()
	views := make([]AgentView, 0, len(agents))
	for _, a := range agents {
		views = append(views, AgentView{
			ID:     a.ID,
			Type:   a.Type,
			Pos:    a.Pos,
			Status: a.Status,
			HP:     a.Vitals.HP,
			XP:     a.Vitals.XP,
		})
	}
	food := e.Food()
	if food == nil {
		food = []model.Food{}
	}
	return Frame{
		Type:      "FRAME",
		Tick:      e.CurrentTick(),
		Clock:     e.Clock(),
		Week:      e.Week(),
		Agents:    views,
		Food:      food,
		Centroids: e.MeanField().ByType,
	}
}

// Bootstrap is the static part of the view: terrain colors on a coarse
// grid plus the home centers. It only changes if the terrain seed does.
type Bootstrap struct {
	ProtocolVersion string        `json:"protocol_version"`
	Tick            uint64        `json:"tick"`
	TerrainSeed     uint32        `json:"terrain_seed"`
	Bounds          model.Bounds  `json:"bounds"`
	Homes           [3]model.Vec2 `json:"homes"`
	GridSize        int           `json:"grid_size"`
	Terrain         []string      `json:"terrain"`
}

const bootstrapGrid = 41

func BootstrapFromEngine(e *world.Engine) Bootstrap {
	b := e.Bounds()
	seed := e.TerrainSeed()
	out := Bootstrap{
		ProtocolVersion: Version,
		Tick:            e.CurrentTick(),
		TerrainSeed:     seed,
		Bounds:          b,
		GridSize:        bootstrapGrid,
		Terrain:         make([]string, 0, bootstrapGrid*bootstrapGrid),
	}
	for _, t := range model.AllTypes {
		out.Homes[t] = e.Home(t)
	}
	stepX := (b.MaxX - b.MinX) / float64(bootstrapGrid-1)
	stepY := (b.MaxY - b.MinY) / float64(bootstrapGrid-1)
	for j := 0; j < bootstrapGrid; j++ {
		y := b.MaxY - float64(j)*stepY
		for i := 0; i < bootstrapGrid; i++ {
			x := b.MinX + float64(i)*stepX
			out.Terrain = append(out.Terrain, gen.SampleAt(x, y, seed).Color.String())
		}
	}
	return out
}
