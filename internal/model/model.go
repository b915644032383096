package model

import (
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&MassRun{},
	&MassNode{},
	&MassSubtotal{},
}

// Point is a body-frame XYZ point stored as WKB.
type Point struct {
	geom.Point
}

// GormDataType implements schema.GormDataTypeInterface.
func (Point) GormDataType() string {
	return "bytes"
}

// GormDBDataType picks the binary column type for each dialect.
func (Point) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "bytea"
	}
	return "blob"
}

////////////////////////
// RUN MODELS
////////////////////////

// MassRun is one aggregation of one aircraft definition
type MassRun struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index:idx_mass_runs_created_at"`
	Aircraft    string    `json:"aircraft" gorm:"size:127;index:idx_mass_runs_aircraft"`
	Gravity     float64   `json:"gravity"`
	TotalWeight float64   `json:"totalWeight"` // N
	CG          Point     `json:"cg"`          // m, body frame

	// Inertia tensor about the CG, kg*m^2
	Ixx float64 `json:"ixx"`
	Iyy float64 `json:"iyy"`
	Izz float64 `json:"izz"`
	Ixy float64 `json:"ixy"`
	Ixz float64 `json:"ixz"`
	Iyz float64 `json:"iyz"`

	DesignSection  string  `json:"designSection" gorm:"size:127"`
	DesignFraction float64 `json:"designFraction"`
	DesignCGX      float64 `json:"designCgX"`
	CGOffsetX      float64 `json:"cgOffsetX"`

	// Subtotals maps weight group label to weight, for quick reads without a join
	Subtotals datatypes.JSON `json:"subtotals" gorm:"default:'{}'"`

	Nodes        []MassNode     `json:"nodes" gorm:"foreignKey:RunID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	SubtotalRows []MassSubtotal `json:"-" gorm:"foreignKey:RunID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (*MassRun) TableName() string {
	return "mass_runs"
}

// MassNode is one row of a run's breakdown, breadth-first
type MassNode struct {
	ID     uint    `json:"id" gorm:"primarykey"`
	RunID  uint    `json:"runId" gorm:"index:idx_mass_nodes_run_id"`
	Seq    int     `json:"seq"`
	Path   string  `json:"path" gorm:"size:511"`
	Depth  int     `json:"depth"`
	IsLeaf bool    `json:"isLeaf"`
	Label  string  `json:"label" gorm:"size:127"`
	Weight float64 `json:"weight"`
	CG     Point   `json:"cg"`
	HasCG  bool    `json:"hasCg"`
}

func (*MassNode) TableName() string {
	return "mass_nodes"
}

// MassSubtotal is the weight of one weight group label in a run
type MassSubtotal struct {
	ID     uint    `json:"id" gorm:"primarykey"`
	RunID  uint    `json:"runId" gorm:"index:idx_mass_subtotals_run_id"`
	Label  string  `json:"label" gorm:"size:127"`
	Weight float64 `json:"weight"`
}

func (*MassSubtotal) TableName() string {
	return "mass_subtotals"
}
