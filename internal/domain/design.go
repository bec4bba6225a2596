package domain

import (
	"time"

	"github.com/google/uuid"
)

// FieldSet is an open mapping of cable-design attribute names to scalar
// values (string, number, or null). No field is mandatory; the set of keys
// depends on which input channel produced it.
type FieldSet map[string]any

// InputSource records which input channel produced a normalized payload.
// It is carried through to the final report for auditability only and never
// affects validation logic.
type InputSource string

const (
	SourceDB         InputSource = "DB"
	SourceStructured InputSource = "STRUCTURED"
	SourceText       InputSource = "TEXT"
)

// CableDesign is a stored cable-design record.
type CableDesign struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	DesignID            string    `db:"design_id" json:"design_id"`
	Standard            *string   `db:"standard" json:"standard,omitempty"`
	Voltage             *string   `db:"voltage" json:"voltage,omitempty"`
	ConductorMaterial   *string   `db:"conductor_material" json:"conductor_material,omitempty"`
	ConductorClass      *string   `db:"conductor_class" json:"conductor_class,omitempty"`
	CSA                 *float64  `db:"csa" json:"csa,omitempty"`
	InsulationMaterial  *string   `db:"insulation_material" json:"insulation_material,omitempty"`
	InsulationThickness *float64  `db:"insulation_thickness" json:"insulation_thickness,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// Fields returns only the technical attributes of the record. Identity
// columns and timestamps never reach the validation payload.
func (d *CableDesign) Fields() FieldSet {
	fields := FieldSet{}
	if d.Standard != nil {
		fields["standard"] = *d.Standard
	}
	if d.Voltage != nil {
		fields["voltage"] = *d.Voltage
	}
	if d.ConductorMaterial != nil {
		fields["conductor_material"] = *d.ConductorMaterial
	}
	if d.ConductorClass != nil {
		fields["conductor_class"] = *d.ConductorClass
	}
	if d.CSA != nil {
		fields["csa"] = *d.CSA
	}
	if d.InsulationMaterial != nil {
		fields["insulation_material"] = *d.InsulationMaterial
	}
	if d.InsulationThickness != nil {
		fields["insulation_thickness"] = *d.InsulationThickness
	}
	return fields
}

// NormalizedDesign is the canonical payload produced once per request.
// It is immutable after creation.
type NormalizedDesign struct {
	Source  InputSource `json:"source"`
	Payload FieldSet    `json:"payload"`
}
