package gen

import (
	"math"
	"testing"

	"swarmisle/internal/sim/world/kernel/model"
)

const testSeed = 1337

func TestHash_UnitInterval(t *testing.T) {
	for ix := int32(-50); ix < 50; ix++ {
		for iy := int32(-50); iy < 50; iy += 7 {
			h := Hash(ix, iy, testSeed)
			if h < 0 || h >= 1 {
				t.Fatalf("hash(%d,%d)=%v out of [0,1)", ix, iy, h)
			}
		}
	}
}

func TestValueNoise_InterpolatesCorners(t *testing.T) {
	// On lattice points the noise equals the hashed corner.
	for _, p := range [][2]int32{{0, 0}, {3, -2}, {-7, 5}} {
		got := ValueNoise(float64(p[0]), float64(p[1]), 1, testSeed)
		want := Hash(p[0], p[1], testSeed)
		if got != want {
			t.Fatalf("lattice %v: got %v want %v", p, got, want)
		}
	}
}

func TestFBM_Range(t *testing.T) {
	for x := -12.0; x <= 12; x += 0.7 {
		for y := -12.0; y <= 12; y += 0.9 {
			v := FBM(x, y, testSeed)
			if v < 0 || v > 1 {
				t.Fatalf("fbm(%v,%v)=%v out of range", x, y, v)
			}
		}
	}
}

func TestIslandMask_CenterIsLandCornersAreOcean(t *testing.T) {
	if m := IslandMask(0, 0, testSeed); m < 0.9 {
		t.Fatalf("center mask=%v, want land", m)
	}
	for _, p := range []model.Vec2{{X: 9.5, Y: 9.5}, {X: -10, Y: -10}} {
		if m := IslandMask(p.X, p.Y, testSeed); m > 0.2 {
			t.Fatalf("corner %v mask=%v, want ocean", p, m)
		}
	}
}

func TestTerrain_PureFunctions(t *testing.T) {
	pts := []model.Vec2{{X: 0, Y: 0}, {X: 2.5, Y: 4.33}, {X: -9, Y: 3}, {X: 7.1, Y: -6.2}}
	first := make([]Sample, len(pts))
	for i, p := range pts {
		first[i] = SampleAt(p.X, p.Y, testSeed)
	}
	// Interleave unrelated evaluations; results must not depend on history.
	for i := 0; i < 100; i++ {
		_ = IslandMask(float64(i), float64(-i), testSeed+uint32(i))
		_ = Wind(float64(i), 1, float64(i), testSeed)
	}
	for i, p := range pts {
		if got := SampleAt(p.X, p.Y, testSeed); got != first[i] {
			t.Fatalf("sample %v changed: %+v vs %+v", p, got, first[i])
		}
	}
}

func TestBiome_HomesSitInTheirOwnSector(t *testing.T) {
	cases := []struct {
		deg  float64
		want model.Type
	}{
		{60, model.TypeR},
		{180, model.TypeG},
		{300, model.TypeB},
	}
	for _, c := range cases {
		a := c.deg * math.Pi / 180
		if got := Biome(5*math.Cos(a), 5*math.Sin(a), testSeed); got != c.want {
			t.Fatalf("biome at %v°: got %v want %v", c.deg, got, c.want)
		}
	}
}

func TestEcoPhi_WaterPenaltyAndForeignBiome(t *testing.T) {
	if v := EcoPhi(model.TypeR, 9.5, 9.5, testSeed); v != ecoWaterPenalty {
		t.Fatalf("water phi=%v want %v", v, ecoWaterPenalty)
	}
	// (-5,0) is G land; R and B see a flat field there.
	if v := EcoPhi(model.TypeR, -5, 0, testSeed); v != 0 {
		t.Fatalf("foreign biome phi=%v want 0", v)
	}
	if v := EcoPhi(model.TypeG, -5, 0, testSeed); v <= 0 {
		t.Fatalf("own biome phi=%v want > 0", v)
	}
}

func TestMaskGradient_PointsInland(t *testing.T) {
	g := MaskGradient(9, 0, testSeed)
	if g.X >= 0 {
		t.Fatalf("gradient at east shore should point west, got %+v", g)
	}
}

func TestWind_DivergenceFree(t *testing.T) {
	const h = gradStep
	for _, p := range []model.Vec2{{X: 0.3, Y: -1.2}, {X: 4, Y: 4}, {X: -6.5, Y: 2}} {
		for _, tm := range []float64{0, 3.7, 50} {
			dx := (Wind(p.X+h, p.Y, tm, testSeed).X - Wind(p.X-h, p.Y, tm, testSeed).X) / (2 * h)
			dy := (Wind(p.X, p.Y+h, tm, testSeed).Y - Wind(p.X, p.Y-h, tm, testSeed).Y) / (2 * h)
			if math.Abs(dx+dy) > 1e-9 {
				t.Fatalf("divergence at %v t=%v: %v", p, tm, dx+dy)
			}
		}
	}
}

func TestWind_AdvectsWithTime(t *testing.T) {
	a := Wind(1, 1, 0, testSeed)
	b := Wind(1, 1, 40, testSeed)
	if a == b {
		t.Fatalf("wind did not change over time: %+v", a)
	}
}

func TestTerrainColor_OceanIsBlue(t *testing.T) {
	c := TerrainColor(IslandMask(-10, -10, testSeed), -10, -10, testSeed)
	if c.B <= c.R {
		t.Fatalf("ocean color %s not blue", c)
	}
	if s := (Color{R: 1, G: 2, B: 255}).String(); s != "#0102ff" {
		t.Fatalf("hex=%s", s)
	}
}
