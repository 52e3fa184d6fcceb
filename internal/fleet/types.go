// Package fleet provides the typed document model for vehicle fleet roster files.
package fleet

// RootDocument represents the complete contents of one vehicle file.
type RootDocument struct {
	Vehicles []VehicleType `json:"vehicles" yaml:"vehicles"`
}

// VehicleType groups roster entries under one manufacturer and model.
type VehicleType struct {
	Manufacturer string   `json:"manufacturer" yaml:"manufacturer"`
	Model        string   `json:"model" yaml:"model"`
	Roster       []Roster `json:"roster" yaml:"roster"`
}

// Roster is one fleet entry within a vehicle type.
// Nil pointers and a nil Years slice mean the field was absent.
type Roster struct {
	FleetSelection FleetSelector `json:"fleet_selection" yaml:"fleet_selection"`
	Engine         *string       `json:"engine,omitempty" yaml:"engine,omitempty"`
	Transmission   *string       `json:"transmission,omitempty" yaml:"transmission,omitempty"`
	Notes          *string       `json:"notes,omitempty" yaml:"notes,omitempty"`
	Years          []uint16      `json:"years,omitempty" yaml:"years,omitempty"`
	Division       *string       `json:"division,omitempty" yaml:"division,omitempty"`
}

// HasYears reports whether the years field was present, even if empty.
func (r Roster) HasYears() bool {
	return r.Years != nil
}

// FleetSelector identifies the fleet numbers or codes a roster entry covers.
// Numeric ranges are inclusive on both ends.
type FleetSelector struct {
	StartNumber       *uint32 `json:"start_number,omitempty" yaml:"start_number,omitempty"`
	EndNumber         *uint32 `json:"end_number,omitempty" yaml:"end_number,omitempty"`
	StartText         *string `json:"start_text,omitempty" yaml:"start_text,omitempty"`
	EndText           *string `json:"end_text,omitempty" yaml:"end_text,omitempty"`
	UseNumericSorting bool    `json:"use_numeric_sorting" yaml:"use_numeric_sorting"`
}

// NumericRange returns the inclusive numeric bounds when both are set.
func (s FleetSelector) NumericRange() (start, end uint32, ok bool) {
	if s.StartNumber == nil || s.EndNumber == nil {
		return 0, 0, false
	}
	return *s.StartNumber, *s.EndNumber, true
}

// Contains reports whether n falls within the inclusive numeric range.
// It is false when either bound is absent or the range is inverted.
func (s FleetSelector) Contains(n uint32) bool {
	start, end, ok := s.NumericRange()
	return ok && start <= n && n <= end
}

// RosterCount returns the total number of roster entries across all vehicles.
func (d *RootDocument) RosterCount() int {
	if d == nil {
		return 0
	}
	total := 0
	for _, v := range d.Vehicles {
		total += len(v.Roster)
	}
	return total
}
