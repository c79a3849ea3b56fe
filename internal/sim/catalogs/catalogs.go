package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"timehelm.world/internal/sim/structure"
)

// Catalogs holds the static world content loaded at startup.
type Catalogs struct {
	Plans PlanCatalog
}

// PlanCatalog is the set of building plans plus the placements that put them
// into the world. Digest covers the raw file so clients and the index can
// detect content changes.
type PlanCatalog struct {
	ByID       map[string]structure.Plan
	Placements []Placement
	Digest     string
}

// Placement instantiates one plan at a ground-plane origin (cm).
type Placement struct {
	Plan string  `yaml:"plan" json:"plan"`
	X    float64 `yaml:"x" json:"x"`
	Z    float64 `yaml:"z" json:"z"`
}

type plansFile struct {
	Plans      []structure.Plan `yaml:"plans"`
	Placements []Placement      `yaml:"placements"`
}

func Load(configDir string) (*Catalogs, error) {
	var c Catalogs
	if err := loadPlans(filepath.Join(configDir, "plans.yaml"), &c.Plans); err != nil {
		return nil, err
	}
	return &c, nil
}

func loadPlans(path string, out *PlanCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var f plansFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("plans.yaml: %w", err)
	}

	out.ByID = map[string]structure.Plan{}
	for _, p := range f.Plans {
		if p.ID == "" {
			return fmt.Errorf("plans.yaml: empty plan id")
		}
		if _, dup := out.ByID[p.ID]; dup {
			return fmt.Errorf("plans.yaml: duplicate plan id %q", p.ID)
		}
		if p.Width <= 0 || p.Depth <= 0 || p.FloorHeight <= 0 {
			return fmt.Errorf("plans.yaml: plan %q has non-positive dimensions", p.ID)
		}
		out.ByID[p.ID] = p
	}

	for _, pl := range f.Placements {
		if _, ok := out.ByID[pl.Plan]; !ok {
			return fmt.Errorf("plans.yaml: placement references unknown plan %q", pl.Plan)
		}
	}
	out.Placements = f.Placements
	return nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
