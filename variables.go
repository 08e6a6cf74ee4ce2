/*
Copyright © 2018 the EFTS authors.
This file is part of EFTS.

EFTS is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

EFTS is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with EFTS.  If not, see <http://www.gnu.org/licenses/>.
*/

package efts

import (
	"fmt"
	"strings"

	"github.com/ctessum/sparse"
)

// DimKind classifies a data variable by the set of dimensions it is
// defined on. The convention encodes it in variable definition tables as
// the characters "2", "3" and "4".
type DimKind int

const (
	// PointSeries variables are defined on [station, time].
	PointSeries DimKind = iota + 2
	// EnsembleSeries variables are defined on [station, ens_member, time].
	EnsembleSeries
	// EnsembleForecast variables are defined on the full forecast cube
	// [lead_time, station, ens_member, time].
	EnsembleForecast
)

// ParseDimKind converts a convention dimensionality code to a DimKind.
func ParseDimKind(code string) (DimKind, error) {
	switch code {
	case "2":
		return PointSeries, nil
	case "3":
		return EnsembleSeries, nil
	case "4":
		return EnsembleForecast, nil
	}
	return 0, dimErrorf("invalid dimension specification %q: only supported are characters 2, 3, 4", code)
}

// Code returns the convention dimensionality code for k.
func (k DimKind) Code() string { return fmt.Sprintf("%d", int(k)) }

// Dims returns the dimension names a variable of kind k is defined on,
// outermost first, or nil if k is not a valid kind.
func (k DimKind) Dims() []string {
	switch k {
	case PointSeries:
		return []string{StationDim, TimeDim}
	case EnsembleSeries:
		return []string{StationDim, EnsMemberDim, TimeDim}
	case EnsembleForecast:
		return DefaultDimOrder()
	}
	return nil
}

func (k DimKind) String() string {
	switch k {
	case PointSeries:
		return "point series"
	case EnsembleSeries:
		return "ensemble series"
	case EnsembleForecast:
		return "ensemble forecast"
	}
	return fmt.Sprintf("DimKind(%d)", int(k))
}

// A VarDef describes a forecast data variable to be created in an EFTS
// netCDF file. It carries metadata only; the backing array is allocated
// by BuildVariables or Create.
type VarDef struct {
	Name      string
	LongName  string
	Units     string
	MissVal   float64
	Precision string // "double", "float" or "integer"
	Kind      DimKind
	// Attributes holds free-form netCDF attributes to attach to the
	// variable, e.g. type, type_description, location_type.
	Attributes map[string]string
}

// NewVarDef returns a variable definition for name with the convention
// defaults filled in: the long name defaults to the name, units to "mm",
// the missing value code to -9999 and the precision to "double".
func NewVarDef(name string, kind DimKind) VarDef {
	return VarDef{
		Name:       name,
		LongName:   name,
		Units:      "mm",
		MissVal:    -9999,
		Precision:  "double",
		Kind:       kind,
		Attributes: DefaultVarAttributes(),
	}
}

// A VarRecord is one row of a variable definition table, with the
// dimensionality given as the convention code "2", "3" or "4".
type VarRecord struct {
	Name       string
	LongName   string
	Units      string
	MissVal    float64
	Precision  string
	Dims       string
	Attributes map[string]string
}

// ParseVarDefs converts a variable definition table to variable
// definitions. Records whose dimensionality code is not one of "2", "3"
// or "4" are rejected collectively, reporting how many records are
// invalid and which.
func ParseVarDefs(records []VarRecord) ([]VarDef, error) {
	defs := make([]VarDef, 0, len(records))
	var invalid []string
	for _, r := range records {
		kind, err := ParseDimKind(r.Dims)
		if err != nil {
			invalid = append(invalid, r.Name)
			continue
		}
		def := NewVarDef(r.Name, kind)
		if r.LongName != "" {
			def.LongName = r.LongName
		}
		if r.Units != "" {
			def.Units = r.Units
		}
		if r.MissVal != 0 {
			def.MissVal = r.MissVal
		}
		if r.Precision != "" {
			def.Precision = r.Precision
		}
		if r.Attributes != nil {
			def.Attributes = r.Attributes
		}
		defs = append(defs, def)
	}
	if len(invalid) > 0 {
		return nil, dimErrorf("invalid dimension specifications for %d variables (%s): only supported are characters 2, 3, 4",
			len(invalid), strings.Join(invalid, ", "))
	}
	return defs, nil
}

// An OptionalVarDef describes one of the optional per-station metadata
// variables of the convention, defined on the [station] dimension.
type OptionalVarDef struct {
	Name         string
	LongName     string
	StandardName string
	Units        string
	MissVal      float64
	Precision    string
}

// DefaultOptionalVars returns the template definition of the optional
// geolocation variables x, y, area and elevation.
func DefaultOptionalVars() []OptionalVarDef {
	return []OptionalVarDef{
		{
			Name:         XVar,
			LongName:     "easting from the GDA94 datum in MGA Zone 55",
			StandardName: "easting_GDA94_zone55",
			Units:        "",
			MissVal:      -9999,
			Precision:    "float",
		},
		{
			Name:         YVar,
			LongName:     "northing from the GDA94 datum in MGA Zone 55",
			StandardName: "northing_GDA94_zone55",
			Units:        "",
			MissVal:      -9999,
			Precision:    "float",
		},
		{
			Name:         AreaVar,
			LongName:     "catchment area",
			StandardName: AreaVar,
			Units:        "km^2",
			MissVal:      -9999,
			Precision:    "float",
		},
		{
			Name:         ElevationVar,
			LongName:     "station elevation above sea level",
			StandardName: ElevationVar,
			Units:        "m",
			MissVal:      -9999,
			Precision:    "float",
		},
	}
}

// A Variable is an allocated, metadata-tagged array for one netCDF
// variable, ready to be written to a file.
type Variable struct {
	Name       string
	Array      *NamedArray
	Precision  string
	Attributes map[string]string
}

// A VariableSet partitions built variables into the metadata variables
// mandated (or optionally allowed) by the convention and the forecast
// data variables.
type VariableSet struct {
	Metadata map[string]*Variable
	Data     map[string]*Variable
}

// A DimSpec gives the size of each EFTS dimension of a data set under
// construction.
type DimSpec struct {
	TimeLen    int
	StationLen int
	LeadLen    int
	EnsLen     int
	StrLen     int
}

func (d *DimSpec) size(name string) int {
	switch name {
	case TimeDim:
		return d.TimeLen
	case StationDim:
		return d.StationLen
	case LeadTimeDim:
		return d.LeadLen
	case EnsMemberDim:
		return d.EnsLen
	case StrLenDim:
		return d.StrLen
	}
	panic("efts: unknown dimension " + name)
}

func (d *DimSpec) sizes(names []string) []int {
	s := make([]int, len(names))
	for i, n := range names {
		s[i] = d.size(n)
	}
	return s
}

// newVariable allocates a zeroed variable on the named dimensions.
func newVariable(name string, dims []string, spec *DimSpec, precision string, attrs map[string]string) *Variable {
	arr := sparse.ZerosDense(spec.sizes(dims)...)
	return &Variable{
		Name:       name,
		Array:      &NamedArray{Data: arr, Dims: append([]string(nil), dims...)},
		Precision:  precision,
		Attributes: attrs,
	}
}

// buildMandatoryVars constructs the mandatory per-station and per-axis
// metadata variables: station_id, station_name, ens_member, lead_time,
// lat and lon.
func buildMandatoryVars(spec *DimSpec, leadTimeStep string) map[string]*Variable {
	return map[string]*Variable{
		StationIDVar: newVariable(StationIDVar, []string{StationDim}, spec, "integer",
			map[string]string{LongNameAttr: "station or node identification code"}),
		StationNameVar: newVariable(StationNameVar, []string{StrLenDim, StationDim}, spec, "char",
			map[string]string{LongNameAttr: "station or node name"}),
		EnsMemberDim: newVariable(EnsMemberDim, []string{EnsMemberDim}, spec, "integer",
			map[string]string{
				LongNameAttr:     "ensemble member",
				StandardNameAttr: EnsMemberDim,
				UnitsAttr:        "member id",
				AxisAttr:         "u",
			}),
		LeadTimeDim: newVariable(LeadTimeDim, []string{LeadTimeDim}, spec, "integer",
			map[string]string{
				LongNameAttr:     "forecast lead time",
				StandardNameAttr: LeadTimeDim,
				UnitsAttr:        leadTimeStep + " since time",
				AxisAttr:         "v",
			}),
		LatVar: newVariable(LatVar, []string{StationDim}, spec, "float",
			map[string]string{
				LongNameAttr: "latitude",
				UnitsAttr:    "degrees north",
				AxisAttr:     "y",
			}),
		LonVar: newVariable(LonVar, []string{StationDim}, spec, "float",
			map[string]string{
				LongNameAttr: "longitude",
				UnitsAttr:    "degrees east",
				AxisAttr:     "x",
			}),
	}
}

// BuildVariables allocates metadata-tagged arrays for the mandatory
// metadata variables, the given optional per-station variables and the
// given data variable definitions, dispatching each data variable to the
// axis set of its dimensionality kind. A name that would be defined twice
// is rejected before any merge.
func BuildVariables(defs []VarDef, optional []OptionalVarDef, spec *DimSpec, leadTimeStep string) (*VariableSet, error) {
	var invalid []string
	for _, def := range defs {
		if def.Kind.Dims() == nil {
			invalid = append(invalid, def.Name)
		}
	}
	if len(invalid) > 0 {
		return nil, dimErrorf("invalid dimension specifications for %d variables (%s): only supported are characters 2, 3, 4",
			len(invalid), strings.Join(invalid, ", "))
	}

	vs := &VariableSet{
		Metadata: buildMandatoryVars(spec, leadTimeStep),
		Data:     make(map[string]*Variable, len(defs)),
	}

	for _, o := range optional {
		if _, ok := vs.Metadata[o.Name]; ok {
			return nil, fmt.Errorf("efts: optional variable %q collides with an already defined variable", o.Name)
		}
		attrs := map[string]string{
			LongNameAttr: o.LongName,
			UnitsAttr:    o.Units,
		}
		if o.StandardName != "" {
			attrs[StandardNameAttr] = o.StandardName
		}
		switch o.Name {
		case XVar:
			attrs[AxisAttr] = "x"
		case YVar:
			attrs[AxisAttr] = "y"
		}
		vs.Metadata[o.Name] = newVariable(o.Name, []string{StationDim}, spec, o.Precision, attrs)
	}

	for _, def := range defs {
		if _, ok := vs.Metadata[def.Name]; ok {
			return nil, fmt.Errorf("efts: data variable %q collides with an already defined variable", def.Name)
		}
		if _, ok := vs.Data[def.Name]; ok {
			return nil, fmt.Errorf("efts: data variable %q is defined twice", def.Name)
		}
		attrs := map[string]string{
			LongNameAttr: def.LongName,
			UnitsAttr:    def.Units,
		}
		for k, v := range def.Attributes {
			attrs[k] = v
		}
		vs.Data[def.Name] = newVariable(def.Name, def.Kind.Dims(), spec, def.Precision, attrs)
	}
	return vs, nil
}
