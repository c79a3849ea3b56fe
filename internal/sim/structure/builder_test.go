package structure

import (
	"math"
	"testing"
)

func TestBuild_Deterministic(t *testing.T) {
	plan := DefaultPlan()
	origin := Vec2{X: -500, Z: 1200}
	a := Build(plan, origin)
	b := Build(plan, origin)

	if len(a.Elements) == 0 {
		t.Fatal("no elements emitted")
	}
	if len(a.Elements) != len(b.Elements) {
		t.Fatalf("element count differs: %d vs %d", len(a.Elements), len(b.Elements))
	}
	for i := range a.Elements {
		if a.Elements[i] != b.Elements[i] {
			t.Fatalf("element %d differs:\n%+v\n%+v", i, a.Elements[i], b.Elements[i])
		}
	}
}

func TestBuild_PhaseOrderAndPlacement(t *testing.T) {
	plan := DefaultPlan()
	s := Build(plan, Vec2{})

	first := s.Elements[0]
	if first.Material != MatFoundation {
		t.Fatalf("first element should be the foundation, got %s", first.Material)
	}
	if first.Position.Y != plan.FoundationHeight/2 {
		t.Fatalf("foundation center Y: got %v", first.Position.Y)
	}

	// Floor-1 walls sit on the foundation top, floor-2 walls one floor higher.
	wantF1 := plan.FoundationTop() + plan.FloorHeight/2
	wantF2 := wantF1 + plan.FloorHeight
	var sawF1, sawF2 int
	for _, el := range s.Elements {
		if el.Material != MatWall || el.Shape != ShapeBox {
			continue
		}
		switch el.Position.Y {
		case wantF1:
			sawF1++
		case wantF2:
			sawF2++
		}
	}
	if sawF1 != 4 || sawF2 != 4 {
		t.Fatalf("exterior wall counts: floor1=%d floor2=%d (want 4 each)", sawF1, sawF2)
	}
}

func TestBuild_OriginTranslatesOnly(t *testing.T) {
	plan := DefaultPlan()
	at0 := Build(plan, Vec2{})
	moved := Build(plan, Vec2{X: 300, Z: -700})
	for i := range at0.Elements {
		a, b := at0.Elements[i], moved.Elements[i]
		if b.Position.X-a.Position.X != 300 || b.Position.Z-a.Position.Z != -700 {
			t.Fatalf("element %d not translated: %+v vs %+v", i, a.Position, b.Position)
		}
		if a.Position.Y != b.Position.Y || a.Size != b.Size || a.Role != b.Role {
			t.Fatalf("element %d changed beyond translation", i)
		}
	}
}

func TestBuild_RoofGeometry(t *testing.T) {
	plan := DefaultPlan()
	s := Build(plan, Vec2{})

	halfW := plan.Width/2 + plan.RoofOverhang
	wantAngle := math.Atan2(plan.RoofHeight, halfW)

	var planes, gables, roofTagged int
	for _, el := range s.Elements {
		if el.Role.Kind == RoleRoof {
			roofTagged++
		}
		if el.Material == MatRoof && el.Shape == ShapeBox && el.Rotation.Z != 0 {
			planes++
			if math.Abs(math.Abs(el.Rotation.Z)-wantAngle) > 1e-9 {
				t.Fatalf("roof plane angle: got %v want %v", el.Rotation.Z, wantAngle)
			}
		}
		if el.Shape == ShapeGable {
			gables++
			if el.Position.Y != plan.Floor2Top() {
				t.Fatalf("gable base: got %v want %v", el.Position.Y, plan.Floor2Top())
			}
		}
	}
	if planes != 2 {
		t.Fatalf("roof planes: got %d want 2", planes)
	}
	if gables != 2 {
		t.Fatalf("gables: got %d want 2", gables)
	}
	// Two planes, two gables, one porch roof.
	if roofTagged != 5 {
		t.Fatalf("roof-tagged elements: got %d want 5", roofTagged)
	}
}

func TestBuild_DoorTags(t *testing.T) {
	plan := DefaultPlan()
	s := Build(plan, Vec2{})

	var doorElems int
	for _, el := range s.Elements {
		if el.Role.Kind != RoleDoor {
			continue
		}
		doorElems++
		if el.Role.Floor < 1 || el.Role.Floor > 2 {
			t.Fatalf("door floor out of range: %+v", el.Role)
		}
	}
	// Each plan door is a panel + frame pair.
	var planDoors int
	for _, o := range plan.Openings {
		if o.Kind == OpeningDoor {
			planDoors++
		}
	}
	if doorElems != 2*planDoors {
		t.Fatalf("door elements: got %d want %d", doorElems, 2*planDoors)
	}
}
