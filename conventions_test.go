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
	"strings"
	"testing"
	"time"

	"github.com/ctessum/cdf"
)

// conformingHeader builds an in-memory netCDF header satisfying the
// mandatory sets of the convention.
func conformingHeader() *cdf.Header {
	h := cdf.NewHeader(
		[]string{TimeDim, StationDim, LeadTimeDim, EnsMemberDim, StrLenDim},
		[]int{31, 2, 3, 10, 30},
	)
	h.AddVariable(TimeDim, []string{TimeDim}, []int32{})
	h.AddVariable(StationDim, []string{StationDim}, []int32{})
	h.AddVariable(LeadTimeDim, []string{LeadTimeDim}, []int32{})
	h.AddVariable(StationIDVar, []string{StationDim}, []int32{})
	h.AddVariable(StationNameVar, []string{StrLenDim, StationDim}, "")
	h.AddVariable(EnsMemberDim, []string{EnsMemberDim}, []int32{})
	h.AddVariable(LatVar, []string{StationDim}, []float32{})
	h.AddVariable(LonVar, []string{StationDim}, []float32{})
	for _, key := range MandatoryGlobalAttributes {
		h.AddAttribute("", key, "x")
	}
	return h
}

func TestHasRequiredDimensions(t *testing.T) {
	if !HasRequiredDimensions(conformingHeader()) {
		t.Error("a conforming header should pass the dimension check")
	}
	h := cdf.NewHeader(
		[]string{TimeDim, StationDim, LeadTimeDim, EnsMemberDim},
		[]int{31, 2, 3, 10},
	)
	if HasRequiredDimensions(h) {
		t.Error("a header missing str_len should fail the dimension check")
	}
	h = cdf.NewHeader(
		[]string{TimeDim, StationDim, LeadTimeDim, EnsMemberDim, StrLenDim, "extra"},
		[]int{31, 2, 3, 10, 30, 7},
	)
	if HasRequiredDimensions(h) {
		t.Error("the dimension check requires exact set equality")
	}
}

func TestHasRequiredVariables(t *testing.T) {
	h := conformingHeader()
	if !HasRequiredVariables(h) {
		t.Error("a conforming header should pass the variable check")
	}
	// Extra variables are allowed.
	h.AddVariable("rain_fcast_ens", DefaultDimOrder(), []float64{})
	if !HasRequiredVariables(h) {
		t.Error("extra variables should be allowed")
	}
}

func TestHasRequiredGlobalAttributes(t *testing.T) {
	h := conformingHeader()
	if !HasRequiredGlobalAttributes(h) {
		t.Error("a conforming header should pass the attribute check")
	}
	// Extra attributes are allowed.
	h.AddAttribute("", "extra", "y")
	if !HasRequiredGlobalAttributes(h) {
		t.Error("extra global attributes should be allowed")
	}
	h2 := cdf.NewHeader([]string{TimeDim}, []int{1})
	h2.AddAttribute("", TitleAttr, "x")
	if HasRequiredGlobalAttributes(h2) {
		t.Error("a header with only a title should fail the attribute check")
	}
}

func TestCheckGlobalAttributes(t *testing.T) {
	attrs := NewGlobalAttributes("t", "i", "s", "c", "m")
	if err := CheckGlobalAttributes(attrs); err != nil {
		t.Fatal(err)
	}
	if attrs[ConventionVersionAttr] != ConventionVersion {
		t.Errorf("have %q, want %q", attrs[ConventionVersionAttr], ConventionVersion)
	}
	delete(attrs, CatchmentAttr)
	delete(attrs, SourceAttr)
	err := CheckGlobalAttributes(attrs)
	if err == nil {
		t.Fatal("missing attributes should be rejected")
	}
	if !strings.Contains(err.Error(), CatchmentAttr) || !strings.Contains(err.Error(), SourceAttr) {
		t.Errorf("error %q should name the missing attributes", err.Error())
	}
}

func TestPadHistory(t *testing.T) {
	at := time.Date(2010, 8, 1, 6, 30, 0, 0, time.UTC)
	h := PadHistory("", "creating file", at)
	if want := "2010-08-01 06:30:00 UTC - creating file"; h != want {
		t.Errorf("have %q, want %q", h, want)
	}
	h = PadHistory(h, "adding forecasts", at)
	if !strings.Contains(h, "\n") {
		t.Errorf("history %q should separate entries with newlines", h)
	}
}
