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

// Package efts defines naming conventions and accessors for Ensemble
// Forecast Time Series (EFTS) netCDF files following version 2.0 of the
// STF netCDF convention for water forecasting. Data variables are laid
// out on a forecast cube with up to four dimensions
// [lead_time, station, ens_member, time], or on its degenerate sub-cubes
// [station, ens_member, time] and [station, time].
package efts

import "github.com/ctessum/cdf"

// Canonical dimension names.
const (
	TimeDim      = "time"
	StationDim   = "station"
	LeadTimeDim  = "lead_time"
	EnsMemberDim = "ens_member"
	StrLenDim    = "str_len"
)

// Canonical variable names.
const (
	StationIDVar   = "station_id"   // int station_id[station]
	StationNameVar = "station_name" // char station_name[str_len,station]
	LatVar         = "lat"          // float lat[station]
	LonVar         = "lon"          // float lon[station]
	XVar           = "x"            // float x[station]
	YVar           = "y"            // float y[station]
	AreaVar        = "area"         // float area[station]
	ElevationVar   = "elevation"    // float elevation[station]
)

// Mandatory global attribute keys.
const (
	TitleAttr             = "title"
	InstitutionAttr       = "institution"
	SourceAttr            = "source"
	CatchmentAttr         = "catchment"
	ConventionVersionAttr = "STF_convention_version"
	ConventionSpecAttr    = "STF_nc_spec"
	CommentAttr           = "comment"
	HistoryAttr           = "history"
)

// Other attribute keys used by the convention.
const (
	TimeStandardAttr = "time_standard"
	StandardNameAttr = "standard_name"
	LongNameAttr     = "long_name"
	AxisAttr         = "axis"
	UnitsAttr        = "units"
	FillValueAttr    = "_FillValue"
)

// Version is the version of this library.
const Version = "0.1.0"

// ConventionVersion is the version of the STF netCDF convention
// implemented by this package.
const ConventionVersion = "2.0"

// ConventionSpecURL locates the document describing the STF netCDF
// convention for water forecasting.
const ConventionSpecURL = "https://github.com/csiro-hydroinformatics/efts/blob/d7d43a995fb5e459bcb894e09b7bb89de03e285c/docs/netcdf_for_water_forecasting.md"

// MandatoryDimensions are the dimensions every EFTS netCDF file must define.
var MandatoryDimensions = []string{TimeDim, StationDim, LeadTimeDim, StrLenDim, EnsMemberDim}

// MandatoryVariables are the variables every EFTS netCDF file must define.
var MandatoryVariables = []string{
	TimeDim,
	StationDim,
	LeadTimeDim,
	StationIDVar,
	StationNameVar,
	EnsMemberDim,
	LatVar,
	LonVar,
}

// MandatoryGlobalAttributes are the global attributes every EFTS netCDF
// file must carry.
var MandatoryGlobalAttributes = []string{
	TitleAttr,
	InstitutionAttr,
	SourceAttr,
	CatchmentAttr,
	ConventionVersionAttr,
	ConventionSpecAttr,
	CommentAttr,
	HistoryAttr,
}

// ConventionalVariables are the variables whose values may be accessed
// directly through Dataset.Values; all other variables hold forecast data
// and must be accessed through the series accessors.
var ConventionalVariables = []string{
	StationDim,
	LeadTimeDim,
	TimeDim,
	EnsMemberDim,
	StationIDVar,
	StationNameVar,
	LatVar,
	LonVar,
	XVar,
	YVar,
	AreaVar,
	ElevationVar,
}

// DefaultDimOrder returns the default order of the dimensions of a data
// variable: [lead_time, station, ens_member, time].
func DefaultDimOrder() []string {
	return []string{LeadTimeDim, StationDim, EnsMemberDim, TimeDim}
}

// HasRequiredDimensions reports whether the dimensions defined in h are
// exactly the mandatory EFTS dimensions.
func HasRequiredDimensions(h *cdf.Header) bool {
	return sameSet(h.Dimensions(""), MandatoryDimensions)
}

// HasRequiredGlobalAttributes reports whether the global attributes of h
// include all mandatory EFTS attributes. Extra attributes are allowed.
func HasRequiredGlobalAttributes(h *cdf.Header) bool {
	return hasAllMembers(h.Attributes(""), MandatoryGlobalAttributes)
}

// HasRequiredVariables reports whether the variables defined in h include
// all mandatory EFTS variables. Extra variables are allowed.
func HasRequiredVariables(h *cdf.Header) bool {
	return hasAllMembers(h.Variables(), MandatoryVariables)
}

// hasAllMembers reports whether every element of reference is in tested.
func hasAllMembers(tested, reference []string) bool {
	set := make(map[string]struct{}, len(tested))
	for _, t := range tested {
		set[t] = struct{}{}
	}
	for _, r := range reference {
		if _, ok := set[r]; !ok {
			return false
		}
	}
	return true
}

func sameSet(a, b []string) bool {
	return hasAllMembers(a, b) && hasAllMembers(b, a)
}
