package structure

import "math"

// Build emits a complete multi-floor building as a flat element tree from a
// plan, translated to origin. Same plan and origin always yield the same
// geometry: there is no randomness and no seed.
//
// Construction phases run in a fixed order because later phases position
// relative to earlier ones (the second floor's base Y is the foundation top
// plus one floor height, the roof sits on the floor-2 wall top, and so on).
func Build(plan Plan, origin Vec2) *Structure {
	b := &builder{plan: plan, origin: origin}

	b.foundation()
	b.exteriorWalls(1)
	b.partitions(1)
	b.floorSlab(1)
	b.exteriorWalls(2)
	b.partitions(2)
	b.floorSlab(2)
	b.openings()
	b.roof()
	b.chimney()
	b.porch()

	return &Structure{
		Origin:   origin,
		Plan:     plan,
		Elements: b.elements,
	}
}

type builder struct {
	plan     Plan
	origin   Vec2
	elements []Element
}

func (b *builder) emit(el Element) {
	el.Position.X += b.origin.X
	el.Position.Z += b.origin.Z
	el.Opacity = VisibleOpacity
	b.elements = append(b.elements, el)
}

func (b *builder) box(mat Material, role Role, pos, size Vec3) {
	b.emit(Element{Shape: ShapeBox, Material: mat, Role: role, Position: pos, Size: size})
}

func (b *builder) foundation() {
	p := b.plan
	b.box(MatFoundation, Role{Kind: RoleWall},
		Vec3{Y: p.FoundationHeight / 2},
		Vec3{X: p.Width, Y: p.FoundationHeight, Z: p.Depth})
}

// exteriorWalls emits the four wall volumes of one story: front/back spanning
// the width, left/right spanning the depth, all sharing one floor height.
func (b *builder) exteriorWalls(floor int) {
	p := b.plan
	t := p.WallThickness
	yc := p.FloorBase(floor) + p.FloorHeight/2

	wallWide := Vec3{X: p.Width, Y: p.FloorHeight, Z: t}
	wallDeep := Vec3{X: t, Y: p.FloorHeight, Z: p.Depth}
	role := Role{Kind: RoleWall}

	b.box(MatWall, role, Vec3{Y: yc, Z: (p.Depth - t) / 2}, wallWide)  // front
	b.box(MatWall, role, Vec3{Y: yc, Z: -(p.Depth - t) / 2}, wallWide) // back
	b.box(MatWall, role, Vec3{X: -(p.Width - t) / 2, Y: yc}, wallDeep) // left
	b.box(MatWall, role, Vec3{X: (p.Width - t) / 2, Y: yc}, wallDeep)  // right
}

// partitions emits the fixed room dividers for one story. There is no room
// layout solver; the plan hardcodes each divider.
func (b *builder) partitions(floor int) {
	p := b.plan
	base := p.FloorBase(floor)
	for _, part := range p.Partitions {
		if part.Floor != floor {
			continue
		}
		size := Vec3{X: p.WallThickness, Y: p.FloorHeight, Z: part.Length}
		if part.AlongX {
			size = Vec3{X: part.Length, Y: p.FloorHeight, Z: p.WallThickness}
		}
		b.box(MatPartition, Role{Kind: RoleWall},
			Vec3{X: part.X, Y: base + p.FloorHeight/2, Z: part.Z}, size)
	}
}

// floorSlab emits the thin slab at a story's base: floor 1 just above the
// foundation top, floor 2 at the inter-story boundary.
func (b *builder) floorSlab(floor int) {
	p := b.plan
	base := p.FloorBase(floor)
	b.box(MatSlab, Role{Kind: RoleWall},
		Vec3{Y: base + p.SlabThickness/2},
		Vec3{X: p.Width, Y: p.SlabThickness, Z: p.Depth})
}

// openings emits each door/window as a pair of meshes: an inset panel box
// plus an outer frame box, both straddling the wall plane by half the wall
// thickness per side. Doors are tagged with the floor whose wall they
// pierce; windows stay untagged and follow the positional visibility rule.
func (b *builder) openings() {
	p := b.plan
	const frameBorder = 6.0
	for _, o := range p.Openings {
		w, h := p.WindowWidth, p.WindowHeight
		sill := o.Sill
		if sill == 0 {
			sill = p.WindowSill
		}
		panelMat, role := MatGlass, Role{Kind: RoleDecorative}
		if o.Kind == OpeningDoor {
			w, h = p.DoorWidth, p.DoorHeight
			sill = 0
			panelMat, role = MatDoorPanel, Role{Kind: RoleDoor, Floor: o.Floor}
		}

		pos, rot := b.wallPoint(o.Wall, o.Offset)
		pos.Y = p.FloorBase(o.Floor) + sill + h/2

		panel := Element{
			Shape: ShapeBox, Material: panelMat, Role: role,
			Position: pos, Rotation: rot,
			Size: Vec3{X: w, Y: h, Z: p.WallThickness / 2},
		}
		frame := Element{
			Shape: ShapeBox, Material: MatFrame, Role: role,
			Position: pos, Rotation: rot,
			Size: Vec3{X: w + 2*frameBorder, Y: h + 2*frameBorder, Z: p.WallThickness + frameBorder},
		}
		b.emit(panel)
		b.emit(frame)
	}
}

// wallPoint returns the wall-plane center for an opening at the given lateral
// offset, plus the yaw that aligns the opening with the wall's run.
func (b *builder) wallPoint(side WallSide, offset float64) (Vec3, Vec3) {
	p := b.plan
	halfW := (p.Width - p.WallThickness) / 2
	halfD := (p.Depth - p.WallThickness) / 2
	switch side {
	case WallFront:
		return Vec3{X: offset, Z: halfD}, Vec3{}
	case WallBack:
		return Vec3{X: offset, Z: -halfD}, Vec3{}
	case WallLeft:
		return Vec3{X: -halfW, Z: offset}, Vec3{Y: math.Pi / 2}
	default: // WallRight
		return Vec3{X: halfW, Z: offset}, Vec3{Y: math.Pi / 2}
	}
}

// roof emits two slanted planes meeting at the ridge plus two extruded
// triangle gable end caps. The plane angle comes from the roof height over
// the overhung half width; each plane's lower edge meets the floor-2 wall
// top. All roof elements are tagged RoleRoof.
func (b *builder) roof() {
	p := b.plan
	halfW := p.Width/2 + p.RoofOverhang
	angle := math.Atan2(p.RoofHeight, halfW)
	slopeLen := math.Hypot(halfW, p.RoofHeight)
	thickness := p.WallThickness / 2
	yc := p.Floor2Top() + p.RoofHeight/2
	role := Role{Kind: RoleRoof}

	planeSize := Vec3{X: slopeLen, Y: thickness, Z: p.Depth + 2*p.RoofOverhang}
	left := Element{
		Shape: ShapeBox, Material: MatRoof, Role: role,
		Position: Vec3{X: -halfW / 2, Y: yc},
		Rotation: Vec3{Z: -angle},
		Size:     planeSize,
	}
	right := Element{
		Shape: ShapeBox, Material: MatRoof, Role: role,
		Position: Vec3{X: halfW / 2, Y: yc},
		Rotation: Vec3{Z: angle},
		Size:     planeSize,
	}
	b.emit(left)
	b.emit(right)

	// Gable end caps: triangle (-halfWidth,0) -> (0,roofHeight) -> (halfWidth,0),
	// extruded by the wall thickness. Wall-colored but roof-tagged.
	gableSize := Vec3{X: p.Width, Y: p.RoofHeight, Z: p.WallThickness}
	halfD := (p.Depth - p.WallThickness) / 2
	for _, z := range []float64{halfD, -halfD} {
		b.emit(Element{
			Shape: ShapeGable, Material: MatWall, Role: role,
			Position: Vec3{Y: p.Floor2Top(), Z: z},
			Size:     gableSize,
		})
	}
}

// chimney: a vertical box plus a wider cap, offset laterally and penetrating
// the roof plane. Purely decorative, no tag.
func (b *builder) chimney() {
	p := b.plan
	c := p.Chimney
	role := Role{Kind: RoleDecorative}
	b.box(MatChimney, role,
		Vec3{X: c.OffsetX, Y: p.Floor2Top() + c.Height/2, Z: c.OffsetZ},
		Vec3{X: c.Side, Y: c.Height, Z: c.Side})
	const capH = 20.0
	b.box(MatChimney, role,
		Vec3{X: c.OffsetX, Y: p.Floor2Top() + c.Height + capH/2, Z: c.OffsetZ},
		Vec3{X: c.Side + 20, Y: capH, Z: c.Side + 20})
}

// porch: platform slab, three ascending steps spaced 30 cm apart in depth,
// two columns, and a roof slab. Only the porch roof carries the roof tag.
func (b *builder) porch() {
	p := b.plan
	po := p.Porch
	frontZ := p.Depth / 2
	deco := Role{Kind: RoleDecorative}

	// Platform at foundation height, attached to the front wall.
	b.box(MatPorch, deco,
		Vec3{Y: p.FoundationHeight / 2, Z: frontZ + po.Depth/2},
		Vec3{X: po.Width, Y: p.FoundationHeight, Z: po.Depth})

	// Steps descend away from the platform, 30 cm apart in depth.
	const stepSpacing = 30.0
	for i := 0; i < 3; i++ {
		h := po.StepRise * float64(3-i)
		b.box(MatPorch, deco,
			Vec3{Y: h / 2, Z: frontZ + po.Depth + stepSpacing/2 + stepSpacing*float64(i)},
			Vec3{X: po.Width * 0.6, Y: h, Z: stepSpacing})
	}

	// Two columns holding the porch roof.
	colY := p.FoundationHeight + p.FloorHeight/2
	colZ := frontZ + po.Depth - 2*po.ColumnRadius
	for _, x := range []float64{-(po.Width/2 - 20), po.Width/2 - 20} {
		b.emit(Element{
			Shape: ShapeCylinder, Material: MatPorch, Role: deco,
			Position: Vec3{X: x, Y: colY, Z: colZ},
			Size:     Vec3{X: po.ColumnRadius, Y: p.FloorHeight},
		})
	}

	// Porch roof slab, roof-tagged so it peels with the building roof.
	const roofThickness = 10.0
	b.box(MatRoof, Role{Kind: RoleRoof},
		Vec3{Y: p.FoundationHeight + p.FloorHeight + roofThickness/2, Z: frontZ + po.Depth/2},
		Vec3{X: po.Width + 20, Y: roofThickness, Z: po.Depth + 20})
}
