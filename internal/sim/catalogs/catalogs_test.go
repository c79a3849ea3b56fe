package catalogs

import (
	"os"
	"path/filepath"
	"testing"
)

func writePlans(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "plans.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

const minimalPlans = `
plans:
  - id: hut
    width: 400
    depth: 300
    floor_height: 250
    wall_thickness: 20
    foundation_height: 20
    slab_thickness: 5
    roof_height: 120
    roof_overhang: 30
    door_width: 90
    door_height: 200
    window_width: 100
    window_height: 100
    window_sill: 80
    openings:
      - { wall: front, floor: 1, kind: door, offset: 0 }
placements:
  - { plan: hut, x: 100, z: -200 }
`

func TestLoad_Plans(t *testing.T) {
	dir := writePlans(t, minimalPlans)
	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p, ok := c.Plans.ByID["hut"]
	if !ok {
		t.Fatal("missing plan hut")
	}
	if p.Width != 400 || p.FloorHeight != 250 {
		t.Fatalf("plan fields: %+v", p)
	}
	if len(p.Openings) != 1 || p.Openings[0].Kind != "door" {
		t.Fatalf("openings: %+v", p.Openings)
	}
	if len(c.Plans.Placements) != 1 || c.Plans.Placements[0].X != 100 {
		t.Fatalf("placements: %+v", c.Plans.Placements)
	}
	if c.Plans.Digest == "" {
		t.Fatal("missing digest")
	}
}

func TestLoad_RejectsBadPlacement(t *testing.T) {
	dir := writePlans(t, minimalPlans+`  - { plan: nope, x: 0, z: 0 }
`)
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for unknown placement plan")
	}
}

func TestLoad_RejectsNonPositiveDims(t *testing.T) {
	dir := writePlans(t, `
plans:
  - id: broken
    width: 0
    depth: 300
    floor_height: 250
`)
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for zero width")
	}
}
