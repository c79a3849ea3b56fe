package structure

// Vec3 is a point or extent in world space. Units are centimeters.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec2 is a ground-plane position (x, z) in centimeters.
type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Shape selects the geometric primitive of an element.
type Shape string

const (
	ShapeBox      Shape = "box"
	ShapeGable    Shape = "gable" // extruded triangle end cap
	ShapeCylinder Shape = "cylinder"
)

// Material is a color/material class resolved by the renderer.
type Material string

const (
	MatFoundation Material = "foundation"
	MatWall       Material = "wall"
	MatPartition  Material = "partition"
	MatSlab       Material = "slab"
	MatDoorPanel  Material = "door_panel"
	MatFrame      Material = "frame"
	MatGlass      Material = "glass"
	MatRoof       Material = "roof"
	MatChimney    Material = "chimney"
	MatPorch      Material = "porch"
)

// RoleKind drives the height-based visibility rules. Doors and roof elements
// sit at a wall's boundary and must disappear in lockstep with the wall that
// contains them, not at their own coordinate; everything else follows the
// plain positional rule.
type RoleKind string

const (
	RoleWall       RoleKind = "wall"
	RoleDoor       RoleKind = "door"
	RoleRoof       RoleKind = "roof"
	RoleDecorative RoleKind = "decorative"
)

// Role tags an element at creation time. Floor is set only for doors and
// identifies the story whose wall the door pierces.
type Role struct {
	Kind  RoleKind `json:"kind"`
	Floor int      `json:"floor,omitempty"`
}

// Element is one emitted geometric primitive. Position is the element center
// in world space; Rotation is Euler radians. For boxes Size is the full
// extent per axis; for cylinders Size.X is the radius and Size.Y the height;
// for gables Size is (span, peak height, extrusion depth).
type Element struct {
	Shape    Shape    `json:"shape"`
	Material Material `json:"material"`
	Position Vec3     `json:"position"`
	Rotation Vec3     `json:"rotation"`
	Size     Vec3     `json:"size"`
	Role     Role     `json:"role"`
	Opacity  float64  `json:"opacity"`
}

// Structure is the generated element tree for one building.
type Structure struct {
	Origin   Vec2      `json:"origin"`
	Plan     Plan      `json:"-"`
	Elements []Element `json:"elements"`
}
