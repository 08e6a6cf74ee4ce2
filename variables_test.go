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
	"reflect"
	"strings"
	"testing"
)

func TestDimKindRoundTrip(t *testing.T) {
	for _, kind := range []DimKind{PointSeries, EnsembleSeries, EnsembleForecast} {
		parsed, err := ParseDimKind(kind.Code())
		if err != nil {
			t.Fatal(err)
		}
		if parsed != kind {
			t.Errorf("have %v, want %v", parsed, kind)
		}
	}
	for _, code := range []string{"", "1", "5", "44", "x"} {
		if _, err := ParseDimKind(code); err == nil {
			t.Errorf("code %q should be rejected", code)
		}
	}
}

func TestDimKindDims(t *testing.T) {
	cases := []struct {
		kind DimKind
		want []string
	}{
		{PointSeries, []string{StationDim, TimeDim}},
		{EnsembleSeries, []string{StationDim, EnsMemberDim, TimeDim}},
		{EnsembleForecast, []string{LeadTimeDim, StationDim, EnsMemberDim, TimeDim}},
	}
	for _, c := range cases {
		if have := c.kind.Dims(); !reflect.DeepEqual(have, c.want) {
			t.Errorf("%v: have %#v, want %#v", c.kind, have, c.want)
		}
	}
	if DimKind(7).Dims() != nil {
		t.Error("an invalid kind should have no dimensions")
	}
}

func TestNewVarDefDefaults(t *testing.T) {
	def := NewVarDef("rain_fcast_ens", EnsembleForecast)
	if def.LongName != "rain_fcast_ens" {
		t.Errorf("have %q, want the variable name", def.LongName)
	}
	if def.Units != "mm" {
		t.Errorf("have %q, want %q", def.Units, "mm")
	}
	if def.MissVal != -9999 {
		t.Errorf("have %v, want -9999", def.MissVal)
	}
	if def.Precision != "double" {
		t.Errorf("have %q, want %q", def.Precision, "double")
	}
}

func TestParseVarDefs(t *testing.T) {
	records := []VarRecord{
		{Name: "rain_obs", Dims: "2"},
		{Name: "rain_sim", Dims: "3", Units: "mm/d"},
		{Name: "rain_fcast_ens", Dims: "4"},
	}
	defs, err := ParseVarDefs(records)
	if err != nil {
		t.Fatal(err)
	}
	if len(defs) != 3 {
		t.Fatalf("have %d definitions, want 3", len(defs))
	}
	if defs[0].Kind != PointSeries || defs[1].Kind != EnsembleSeries || defs[2].Kind != EnsembleForecast {
		t.Errorf("have kinds %v, %v, %v", defs[0].Kind, defs[1].Kind, defs[2].Kind)
	}
	if defs[1].Units != "mm/d" {
		t.Errorf("have %q, want %q", defs[1].Units, "mm/d")
	}
}

func TestParseVarDefsInvalid(t *testing.T) {
	records := []VarRecord{
		{Name: "ok", Dims: "4"},
		{Name: "bad_one", Dims: "5"},
		{Name: "bad_two", Dims: "x"},
	}
	_, err := ParseVarDefs(records)
	if err == nil {
		t.Fatal("invalid dimensionality codes should be rejected")
	}
	msg := err.Error()
	if !strings.Contains(msg, "2 variables") {
		t.Errorf("error %q should count the invalid records", msg)
	}
	if !strings.Contains(msg, "bad_one") || !strings.Contains(msg, "bad_two") {
		t.Errorf("error %q should name the invalid records", msg)
	}
}

func testDimSpec() *DimSpec {
	return &DimSpec{TimeLen: 31, StationLen: 2, LeadLen: 3, EnsLen: 10, StrLen: 30}
}

func TestBuildVariablesDispatch(t *testing.T) {
	defs := []VarDef{
		NewVarDef("rain_obs", PointSeries),
		NewVarDef("rain_sim", EnsembleSeries),
		NewVarDef("rain_fcast_ens", EnsembleForecast),
	}
	vs, err := BuildVariables(defs, nil, testDimSpec(), "hours")
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name  string
		shape []int
	}{
		{"rain_obs", []int{2, 31}},
		{"rain_sim", []int{2, 10, 31}},
		{"rain_fcast_ens", []int{3, 2, 10, 31}},
	}
	for _, c := range cases {
		v, ok := vs.Data[c.name]
		if !ok {
			t.Fatalf("variable %s was not built", c.name)
		}
		if !reflect.DeepEqual(v.Array.Data.Shape, c.shape) {
			t.Errorf("%s: have shape %#v, want %#v", c.name, v.Array.Data.Shape, c.shape)
		}
	}
	for _, name := range []string{StationIDVar, StationNameVar, EnsMemberDim, LeadTimeDim, LatVar, LonVar} {
		if _, ok := vs.Metadata[name]; !ok {
			t.Errorf("mandatory variable %s was not built", name)
		}
	}
	if shape := vs.Metadata[StationNameVar].Array.Data.Shape; !reflect.DeepEqual(shape, []int{30, 2}) {
		t.Errorf("station_name: have shape %#v, want %#v", shape, []int{30, 2})
	}
	if units := vs.Metadata[LeadTimeDim].Attributes[UnitsAttr]; units != "hours since time" {
		t.Errorf("have %q, want %q", units, "hours since time")
	}
}

func TestBuildVariablesOptional(t *testing.T) {
	vs, err := BuildVariables(nil, DefaultOptionalVars(), testDimSpec(), "hours")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{XVar, YVar, AreaVar, ElevationVar} {
		v, ok := vs.Metadata[name]
		if !ok {
			t.Fatalf("optional variable %s was not built", name)
		}
		if !reflect.DeepEqual(v.Array.Dims, []string{StationDim}) {
			t.Errorf("%s: have dims %#v, want [station]", name, v.Array.Dims)
		}
	}
}

func TestBuildVariablesCollision(t *testing.T) {
	// A data variable may never override an already defined variable.
	defs := []VarDef{NewVarDef(LatVar, PointSeries)}
	if _, err := BuildVariables(defs, nil, testDimSpec(), "hours"); err == nil {
		t.Error("a data variable named lat should be rejected")
	}
	defs = []VarDef{
		NewVarDef("rain_obs", PointSeries),
		NewVarDef("rain_obs", EnsembleSeries),
	}
	if _, err := BuildVariables(defs, nil, testDimSpec(), "hours"); err == nil {
		t.Error("a twice-defined data variable should be rejected")
	}
}
