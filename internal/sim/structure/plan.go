package structure

// WallSide names an exterior wall of the rectangular footprint.
// Front faces +Z, back faces -Z, left faces -X, right faces +X.
type WallSide string

const (
	WallFront WallSide = "front"
	WallBack  WallSide = "back"
	WallLeft  WallSide = "left"
	WallRight WallSide = "right"
)

// OpeningKind distinguishes doors (tagged, floor-aligned visibility) from
// windows (untagged, positional visibility).
type OpeningKind string

const (
	OpeningDoor   OpeningKind = "door"
	OpeningWindow OpeningKind = "window"
)

// Opening places one door or window in an exterior wall. Offset is the
// lateral distance from the wall center along the wall's run, in cm.
// Sill is the opening bottom above the floor base (doors use 0).
type Opening struct {
	Wall   WallSide    `yaml:"wall" json:"wall"`
	Floor  int         `yaml:"floor" json:"floor"`
	Kind   OpeningKind `yaml:"kind" json:"kind"`
	Offset float64     `yaml:"offset" json:"offset"`
	Sill   float64     `yaml:"sill,omitempty" json:"sill,omitempty"`
}

// Partition is one fixed interior room divider. Center is relative to the
// building footprint center on the ground plane; the box rests on the
// partition's floor base.
type Partition struct {
	Floor  int     `yaml:"floor" json:"floor"`
	X      float64 `yaml:"x" json:"x"`
	Z      float64 `yaml:"z" json:"z"`
	Length float64 `yaml:"length" json:"length"`
	// AlongX lays the partition's long axis along X; otherwise along Z.
	AlongX bool `yaml:"along_x" json:"along_x"`
}

// PorchPlan sizes the entrance porch attached to the front wall.
type PorchPlan struct {
	Width        float64 `yaml:"width" json:"width"`
	Depth        float64 `yaml:"depth" json:"depth"`
	StepRise     float64 `yaml:"step_rise" json:"step_rise"`
	ColumnRadius float64 `yaml:"column_radius" json:"column_radius"`
}

// ChimneyPlan sizes and places the chimney. OffsetX/OffsetZ are relative to
// the footprint center.
type ChimneyPlan struct {
	Side    float64 `yaml:"side" json:"side"`
	Height  float64 `yaml:"height" json:"height"`
	OffsetX float64 `yaml:"offset_x" json:"offset_x"`
	OffsetZ float64 `yaml:"offset_z" json:"offset_z"`
}

// Plan is the full recipe for one building: dimensional constants plus
// opening and partition placements. Immutable once constructed; the builder
// consumes it exactly once per invocation. All lengths are centimeters.
type Plan struct {
	ID string `yaml:"id" json:"id"`

	Width            float64 `yaml:"width" json:"width"`
	Depth            float64 `yaml:"depth" json:"depth"`
	FloorHeight      float64 `yaml:"floor_height" json:"floor_height"`
	WallThickness    float64 `yaml:"wall_thickness" json:"wall_thickness"`
	FoundationHeight float64 `yaml:"foundation_height" json:"foundation_height"`
	SlabThickness    float64 `yaml:"slab_thickness" json:"slab_thickness"`

	RoofHeight   float64 `yaml:"roof_height" json:"roof_height"`
	RoofOverhang float64 `yaml:"roof_overhang" json:"roof_overhang"`

	DoorWidth    float64 `yaml:"door_width" json:"door_width"`
	DoorHeight   float64 `yaml:"door_height" json:"door_height"`
	WindowWidth  float64 `yaml:"window_width" json:"window_width"`
	WindowHeight float64 `yaml:"window_height" json:"window_height"`
	WindowSill   float64 `yaml:"window_sill" json:"window_sill"`

	Openings   []Opening   `yaml:"openings" json:"openings"`
	Partitions []Partition `yaml:"partitions" json:"partitions"`
	Porch      PorchPlan   `yaml:"porch" json:"porch"`
	Chimney    ChimneyPlan `yaml:"chimney" json:"chimney"`
}

// FoundationTop is the base Y of the first floor.
func (p Plan) FoundationTop() float64 { return p.FoundationHeight }

// Floor1Top is the first floor's wall-top height; doors on floor 1 follow it.
func (p Plan) Floor1Top() float64 { return p.FoundationHeight + p.FloorHeight }

// Floor2Top is the second floor's wall-top height; floor-2 doors and the
// whole roof follow it.
func (p Plan) Floor2Top() float64 { return p.FoundationHeight + 2*p.FloorHeight }

// FloorBase returns the base Y of the given story (1 or 2).
func (p Plan) FloorBase(floor int) float64 {
	return p.FoundationHeight + float64(floor-1)*p.FloorHeight
}

// DefaultPlan is the two-story house the world generator places by default.
// The same constants ship in configs/plans.yaml; this copy keeps the sim and
// its tests independent of config files.
func DefaultPlan() Plan {
	return Plan{
		ID:               "house_two_story",
		Width:            900,
		Depth:            700,
		FloorHeight:      280,
		WallThickness:    20,
		FoundationHeight: 30,
		SlabThickness:    5,
		RoofHeight:       180,
		RoofOverhang:     40,
		DoorWidth:        90,
		DoorHeight:       200,
		WindowWidth:      120,
		WindowHeight:     110,
		WindowSill:       90,
		Openings: []Opening{
			{Wall: WallFront, Floor: 1, Kind: OpeningDoor, Offset: 0},
			{Wall: WallFront, Floor: 1, Kind: OpeningWindow, Offset: -260, Sill: 90},
			{Wall: WallFront, Floor: 1, Kind: OpeningWindow, Offset: 260, Sill: 90},
			{Wall: WallBack, Floor: 1, Kind: OpeningDoor, Offset: 180},
			{Wall: WallBack, Floor: 1, Kind: OpeningWindow, Offset: -200, Sill: 90},
			{Wall: WallLeft, Floor: 1, Kind: OpeningWindow, Offset: 0, Sill: 90},
			{Wall: WallRight, Floor: 1, Kind: OpeningWindow, Offset: -150, Sill: 90},
			{Wall: WallFront, Floor: 2, Kind: OpeningWindow, Offset: -260, Sill: 90},
			{Wall: WallFront, Floor: 2, Kind: OpeningWindow, Offset: 0, Sill: 90},
			{Wall: WallFront, Floor: 2, Kind: OpeningWindow, Offset: 260, Sill: 90},
			{Wall: WallBack, Floor: 2, Kind: OpeningWindow, Offset: 0, Sill: 90},
			{Wall: WallLeft, Floor: 2, Kind: OpeningWindow, Offset: 120, Sill: 90},
			{Wall: WallRight, Floor: 2, Kind: OpeningWindow, Offset: 120, Sill: 90},
		},
		Partitions: []Partition{
			{Floor: 1, X: -100, Z: 0, Length: 660, AlongX: false},
			{Floor: 1, X: 250, Z: -175, Length: 360, AlongX: true},
			{Floor: 2, X: 0, Z: 50, Length: 860, AlongX: true},
			{Floor: 2, X: -220, Z: -150, Length: 300, AlongX: false},
		},
		Porch: PorchPlan{
			Width:        260,
			Depth:        180,
			StepRise:     15,
			ColumnRadius: 10,
		},
		Chimney: ChimneyPlan{
			Side:    60,
			Height:  320,
			OffsetX: 280,
			OffsetZ: -120,
		},
	}
}
