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
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/ctessum/cdf"
)

// A Dataset wraps an EFTS netCDF file, caching the decoded time axis and
// the station identity variables. A Dataset owns its file handle
// exclusively and is not safe for concurrent use.
type Dataset struct {
	path     string
	file     *os.File
	nc       *cdf.File
	writable bool
	closed   bool

	timeStandard string
	times        []time.Time
	stationIDs   []string
	stationNames []string
}

// CreateOptions adjusts the dimensions and the station metadata of a data
// set under creation. The zero value of each field selects its default.
type CreateOptions struct {
	LeadLength     int    // length of the lead_time dimension, default 48
	EnsembleLength int    // length of the ens_member dimension, default 50
	LeadTimeStep   string // time unit of the lead_time axis, default "hours"
	StrLen         int    // length of the str_len dimension, default 30
	TimeStandard   string // time standard annotation, default "UTC"

	StationNames []string  // one per station, default the identifiers
	Latitudes    []float64 // one per station
	Longitudes   []float64 // one per station

	// Optional per-station metadata variables to define, e.g.
	// DefaultOptionalVars(). Their values start out as their fill value.
	Optional []OptionalVarDef
}

const (
	defaultLeadLength     = 48
	defaultEnsembleLength = 50
	defaultLeadTimeStep   = "hours"
	defaultStrLen         = 30
	defaultTimeStandard   = "UTC"
)

func (o *CreateOptions) withDefaults() *CreateOptions {
	out := CreateOptions{}
	if o != nil {
		out = *o
	}
	if out.LeadLength == 0 {
		out.LeadLength = defaultLeadLength
	}
	if out.EnsembleLength == 0 {
		out.EnsembleLength = defaultEnsembleLength
	}
	if out.LeadTimeStep == "" {
		out.LeadTimeStep = defaultLeadTimeStep
	}
	if out.StrLen == 0 {
		out.StrLen = defaultStrLen
	}
	if out.TimeStandard == "" {
		out.TimeStandard = defaultTimeStandard
	}
	return &out
}

// precisionZero maps a precision name to a typed zero value accepted by
// the netCDF header builder.
func precisionZero(precision string) (interface{}, error) {
	switch precision {
	case "double":
		return []float64{}, nil
	case "float":
		return []float32{}, nil
	case "integer":
		return []int32{}, nil
	case "short":
		return []int16{}, nil
	case "char":
		return "", nil
	}
	return nil, fmt.Errorf("efts: unsupported precision %q", precision)
}

// fillValueFor returns a one-element typed slice carrying v, matching the
// storage type selected by precision, for use as a _FillValue attribute.
func fillValueFor(precision string, v float64) interface{} {
	switch precision {
	case "double":
		return []float64{v}
	case "float":
		return []float32{float32(v)}
	case "integer":
		return []int32{int32(v)}
	case "short":
		return []int16{int16(v)}
	}
	return nil
}

// Create builds a new EFTS netCDF file at path and returns it open for
// writing. It refuses to touch an existing path. globals must carry all
// mandatory global attributes; a creation line is appended to its history.
// The forecast data variables named by defs are filled with their missing
// value codes.
func Create(path string, globals map[string]string, axis TimeInfo, stationIDs []int, defs []VarDef, opts *CreateOptions) (*Dataset, error) {
	if len(stationIDs) == 0 {
		return nil, fmt.Errorf("efts: creating %s: at least one station identifier is required", path)
	}
	if axis.N < 1 {
		return nil, fmt.Errorf("efts: creating %s: the time axis must have at least one instant", path)
	}
	if _, err := stepDuration(axis.Step); err != nil {
		return nil, err
	}
	if err := CheckGlobalAttributes(globals); err != nil {
		return nil, err
	}
	o := opts.withDefaults()
	if o.StationNames != nil && len(o.StationNames) != len(stationIDs) {
		return nil, dimErrorf("%d station names do not match %d stations", len(o.StationNames), len(stationIDs))
	}
	if o.Latitudes != nil && len(o.Latitudes) != len(stationIDs) {
		return nil, dimErrorf("%d latitudes do not match %d stations", len(o.Latitudes), len(stationIDs))
	}
	if o.Longitudes != nil && len(o.Longitudes) != len(stationIDs) {
		return nil, dimErrorf("%d longitudes do not match %d stations", len(o.Longitudes), len(stationIDs))
	}

	spec := &DimSpec{
		TimeLen:    axis.N,
		StationLen: len(stationIDs),
		LeadLen:    o.LeadLength,
		EnsLen:     o.EnsembleLength,
		StrLen:     o.StrLen,
	}
	vs, err := BuildVariables(defs, o.Optional, spec, o.LeadTimeStep)
	if err != nil {
		return nil, err
	}

	// All precondition checks are done; refuse to clobber an existing
	// file before creating anything.
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("efts: file %s already exists", path)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("efts: checking %s: %v", path, err)
	}

	h := cdf.NewHeader(
		[]string{TimeDim, StationDim, LeadTimeDim, EnsMemberDim, StrLenDim},
		[]int{spec.TimeLen, spec.StationLen, spec.LeadLen, spec.EnsLen, spec.StrLen},
	)

	h.AddVariable(TimeDim, []string{TimeDim}, []int32{})
	h.AddAttribute(TimeDim, StandardNameAttr, TimeDim)
	h.AddAttribute(TimeDim, LongNameAttr, TimeDim)
	h.AddAttribute(TimeDim, UnitsAttr, axis.Units())
	h.AddAttribute(TimeDim, TimeStandardAttr, o.TimeStandard)
	h.AddAttribute(TimeDim, AxisAttr, "t")

	h.AddVariable(StationDim, []string{StationDim}, []int32{})
	h.AddAttribute(StationDim, LongNameAttr, "station index")

	for _, name := range sortedVarNames(vs.Metadata) {
		mv := vs.Metadata[name]
		zero, err := precisionZero(mv.Precision)
		if err != nil {
			return nil, err
		}
		h.AddVariable(name, mv.Array.Dims, zero)
		for _, k := range sortedAttrKeys(mv.Attributes) {
			h.AddAttribute(name, k, mv.Attributes[k])
		}
	}
	for _, ov := range o.Optional {
		if fv := fillValueFor(vs.Metadata[ov.Name].Precision, ov.MissVal); fv != nil {
			h.AddAttribute(ov.Name, FillValueAttr, fv)
		}
	}
	if fv := fillValueFor("float", -9999); fv != nil {
		h.AddAttribute(LatVar, FillValueAttr, fv)
		h.AddAttribute(LonVar, FillValueAttr, fv)
	}

	defByName := make(map[string]VarDef, len(defs))
	for _, def := range defs {
		defByName[def.Name] = def
	}
	for _, name := range sortedVarNames(vs.Data) {
		dv := vs.Data[name]
		zero, err := precisionZero(dv.Precision)
		if err != nil {
			return nil, err
		}
		h.AddVariable(name, dv.Array.Dims, zero)
		for _, k := range sortedAttrKeys(dv.Attributes) {
			if k == FillValueAttr {
				// Written below with the variable's storage type.
				continue
			}
			h.AddAttribute(name, k, dv.Attributes[k])
		}
		if fv := fillValueFor(dv.Precision, defByName[name].MissVal); fv != nil {
			h.AddAttribute(name, FillValueAttr, fv)
		}
	}

	stamped := make(map[string]string, len(globals))
	for k, v := range globals {
		stamped[k] = v
	}
	stamped[HistoryAttr] = PadHistory(stamped[HistoryAttr],
		fmt.Sprintf("creating %s", path), time.Now())
	for _, k := range sortedAttrKeys(stamped) {
		h.AddAttribute("", k, stamped[k])
	}

	h.Define()
	if errs := h.Check(); len(errs) > 0 {
		return nil, fmt.Errorf("efts: invalid netCDF header for %s: %v", path, errs[0])
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("efts: creating %s: %v", path, err)
	}
	nc, err := cdf.Create(file, h)
	if err != nil {
		file.Close()
		os.Remove(path)
		return nil, fmt.Errorf("efts: creating %s: %v", path, err)
	}

	ds := &Dataset{
		path:         path,
		file:         file,
		nc:           nc,
		writable:     true,
		timeStandard: o.TimeStandard,
	}
	if err := ds.writeCoordinates(axis, stationIDs, o, vs); err != nil {
		file.Close()
		os.Remove(path)
		return nil, err
	}
	for _, name := range sortedVarNames(vs.Data) {
		if err := nc.Fill(name); err != nil {
			file.Close()
			os.Remove(path)
			return nil, fmt.Errorf("efts: filling variable %s: %v", name, err)
		}
	}
	ds.times, err = axis.Times()
	if err != nil {
		file.Close()
		os.Remove(path)
		return nil, err
	}
	ds.stationIDs = make([]string, len(stationIDs))
	for i, id := range stationIDs {
		ds.stationIDs[i] = strconv.Itoa(id)
	}
	ds.stationNames = append([]string(nil), ds.stationIDs...)
	if o.StationNames != nil {
		ds.stationNames = append([]string(nil), o.StationNames...)
	}
	return ds, nil
}

// writeCoordinates writes the time axis, the station identity variables
// and the remaining per-axis coordinate variables of a new file.
func (d *Dataset) writeCoordinates(axis TimeInfo, stationIDs []int, o *CreateOptions, vs *VariableSet) error {
	n := len(stationIDs)

	offsets := axis.Values()
	timeVals := make([]float64, len(offsets))
	for i, o := range offsets {
		timeVals[i] = float64(o)
	}
	if err := writeVar64(d.nc, TimeDim, timeVals); err != nil {
		return err
	}

	seq := func(n int) []float64 {
		v := make([]float64, n)
		for i := range v {
			v[i] = float64(i + 1)
		}
		return v
	}
	if err := writeVar64(d.nc, StationDim, seq(n)); err != nil {
		return err
	}
	if err := writeVar64(d.nc, LeadTimeDim, seq(o.LeadLength)); err != nil {
		return err
	}
	if err := writeVar64(d.nc, EnsMemberDim, seq(o.EnsembleLength)); err != nil {
		return err
	}

	ids := make([]float64, n)
	names := make([]string, n)
	for i, id := range stationIDs {
		ids[i] = float64(id)
		names[i] = strconv.Itoa(id)
	}
	if o.StationNames != nil {
		copy(names, o.StationNames)
	}
	if err := writeVar64(d.nc, StationIDVar, ids); err != nil {
		return err
	}
	if err := writeStrings(d.nc, StationNameVar, names); err != nil {
		return err
	}

	if o.Latitudes != nil {
		if err := writeVar64(d.nc, LatVar, o.Latitudes); err != nil {
			return err
		}
	} else if err := d.nc.Fill(LatVar); err != nil {
		return fmt.Errorf("efts: filling variable %s: %v", LatVar, err)
	}
	if o.Longitudes != nil {
		if err := writeVar64(d.nc, LonVar, o.Longitudes); err != nil {
			return err
		}
	} else if err := d.nc.Fill(LonVar); err != nil {
		return fmt.Errorf("efts: filling variable %s: %v", LonVar, err)
	}
	for _, ov := range o.Optional {
		if err := d.nc.Fill(ov.Name); err != nil {
			return fmt.Errorf("efts: filling variable %s: %v", ov.Name, err)
		}
	}
	return nil
}

// Open opens an existing EFTS netCDF file read-only.
func Open(path string) (*Dataset, error) {
	return open(path, false)
}

// OpenUpdate opens an existing EFTS netCDF file for reading and writing.
func OpenUpdate(path string) (*Dataset, error) {
	return open(path, true)
}

func open(path string, writable bool) (*Dataset, error) {
	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR
	}
	file, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, fmt.Errorf("efts: opening %s: %v", path, err)
	}
	nc, err := cdf.Open(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("efts: opening %s: %v", path, err)
	}
	d := &Dataset{
		path:     path,
		file:     file,
		nc:       nc,
		writable: writable,
	}
	if err := d.decodeCoordinates(); err != nil {
		file.Close()
		return nil, err
	}
	return d, nil
}

// decodeCoordinates loads and caches the time axis and the station
// identity variables. The time axis is decoded from the units attribute
// only here, after the header has been read whole, so that a malformed
// lead_time units string does not prevent opening.
func (d *Dataset) decodeCoordinates() error {
	offsets, _, err := readVar64(d.nc, TimeDim)
	if err != nil {
		return err
	}
	units := attrString(d.nc.Header, TimeDim, UnitsAttr)
	d.times, err = decodeTimeAxis(offsets, units)
	if err != nil {
		return err
	}
	d.timeStandard = attrString(d.nc.Header, TimeDim, TimeStandardAttr)

	ids, _, err := readVar64(d.nc, StationIDVar)
	if err != nil {
		return err
	}
	d.stationIDs = make([]string, len(ids))
	for i, id := range ids {
		d.stationIDs[i] = strconv.FormatInt(int64(id), 10)
	}
	d.stationNames, err = readStrings(d.nc, StationNameVar)
	return err
}

// Close releases the underlying file. Closing a closed data set is a
// no-op.
func (d *Dataset) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.file.Close()
}

func (d *Dataset) check() error {
	if d.closed {
		return fmt.Errorf("efts: data set %s is closed", d.path)
	}
	return nil
}

func (d *Dataset) checkWritable() error {
	if err := d.check(); err != nil {
		return err
	}
	if !d.writable {
		return fmt.Errorf("efts: data set %s is not open for writing", d.path)
	}
	return nil
}

// Path returns the file system path of the data set.
func (d *Dataset) Path() string { return d.path }

// Summary returns a human-readable dump of the netCDF header.
func (d *Dataset) Summary() string { return d.nc.Header.String() }

// GlobalAttr returns the value of a string-valued global attribute, or ""
// when it is absent.
func (d *Dataset) GlobalAttr(name string) string {
	return attrString(d.nc.Header, "", name)
}

// TimeStandard returns the time standard annotation of the time axis.
func (d *Dataset) TimeStandard() string { return d.timeStandard }

// VariableNames lists the variables defined in the file.
func (d *Dataset) VariableNames() []string { return d.nc.Header.Variables() }

// DimNames lists the dimensions defined in the file.
func (d *Dataset) DimNames() []string { return d.nc.Header.Dimensions("") }

// VariableDims returns the dimension names of a variable, outermost first.
func (d *Dataset) VariableDims(v string) ([]string, error) {
	dims := d.nc.Header.Dimensions(v)
	if dims == nil {
		return nil, fmt.Errorf("efts: no variable %s in file", v)
	}
	return dims, nil
}

func (d *Dataset) dimLen(dim string) int {
	l := d.nc.Header.Lengths(dim)
	if len(l) != 1 {
		return 0
	}
	return l[0]
}

// StationCount returns the number of stations.
func (d *Dataset) StationCount() int { return len(d.stationIDs) }

// EnsembleSize returns the length of the ens_member dimension.
func (d *Dataset) EnsembleSize() int { return d.dimLen(EnsMemberDim) }

// LeadTimeCount returns the length of the lead_time dimension.
func (d *Dataset) LeadTimeCount() int { return d.dimLen(LeadTimeDim) }

// TimeValues returns the instants of the time axis.
func (d *Dataset) TimeValues() []time.Time {
	return append([]time.Time(nil), d.times...)
}

// LeadTimeValues returns the values of the lead_time coordinate variable.
func (d *Dataset) LeadTimeValues() ([]float64, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	v, _, err := readVar64(d.nc, LeadTimeDim)
	return v, err
}

// StationIDs returns the station identifiers, as strings.
func (d *Dataset) StationIDs() []string {
	return append([]string(nil), d.stationIDs...)
}

// StationNames returns the decoded station names.
func (d *Dataset) StationNames() []string {
	return append([]string(nil), d.stationNames...)
}

// isConventional reports whether v is one of the conventional metadata
// variables directly accessible through Values.
func isConventional(v string) bool {
	for _, c := range ConventionalVariables {
		if c == v {
			return true
		}
	}
	return false
}

// Values returns the full contents of a conventional numeric variable.
// Forecast data variables must be accessed through the series accessors,
// and station names through StationNames.
func (d *Dataset) Values(v string) ([]float64, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	if !isConventional(v) {
		return nil, fmt.Errorf("efts: variable %s is not a conventional variable; use the series accessors", v)
	}
	if v == StationNameVar {
		return nil, fmt.Errorf("efts: variable %s holds characters; use StationNames", v)
	}
	vals, _, err := readVar64(d.nc, v)
	return vals, err
}

// IndexForIdentifier returns the zero-based station index of the given
// station identifier.
func (d *Dataset) IndexForIdentifier(id string) (int, error) {
	for i, s := range d.stationIDs {
		if s == id {
			return i, nil
		}
	}
	return 0, &NotFoundError{Identifier: id, Dimension: StationDim}
}

// IndexForTime returns the zero-based index of the given instant on the
// time axis.
func (d *Dataset) IndexForTime(t time.Time) (int, error) {
	for i, v := range d.times {
		if v.Equal(t) {
			return i, nil
		}
	}
	return 0, &NotFoundError{Identifier: t.Format(time.RFC3339), Dimension: TimeDim}
}

// checkVarDims verifies that variable v is laid out on exactly the given
// dimensions, in order.
func (d *Dataset) checkVarDims(v string, want []string) error {
	dims, err := d.VariableDims(v)
	if err != nil {
		return err
	}
	if len(dims) != len(want) {
		return dimErrorf("variable %s has dimensions %v, want %v", v, dims, want)
	}
	for i := range want {
		if dims[i] != want[i] {
			return dimErrorf("variable %s has dimensions %v, want %v", v, dims, want)
		}
	}
	return nil
}

// EnsembleForecasts returns the forecast issued at time index timeIdx for
// the station at stationIdx, as a [lead_time, ens_member] array. The
// variable must be laid out on the full forecast cube.
func (d *Dataset) EnsembleForecasts(v string, stationIdx, timeIdx int) (*NamedArray, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	if err := d.checkVarDims(v, DefaultDimOrder()); err != nil {
		return nil, err
	}
	begin := []int{0, stationIdx, 0, timeIdx}
	count := []int{d.LeadTimeCount(), 1, d.EnsembleSize(), 1}
	data, err := readWindow(d.nc, v, begin, count)
	if err != nil {
		return nil, err
	}
	a, err := newWindowArray(data, count, DefaultDimOrder())
	if err != nil {
		return nil, err
	}
	return ReduceDims(a, []string{LeadTimeDim, EnsMemberDim})
}

// EnsembleForecastsForStation returns all forecasts for one station as a
// [lead_time, ens_member, time] array.
func (d *Dataset) EnsembleForecastsForStation(v string, stationIdx int) (*NamedArray, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	if err := d.checkVarDims(v, DefaultDimOrder()); err != nil {
		return nil, err
	}
	begin := []int{0, stationIdx, 0, 0}
	count := []int{d.LeadTimeCount(), 1, d.EnsembleSize(), len(d.times)}
	data, err := readWindow(d.nc, v, begin, count)
	if err != nil {
		return nil, err
	}
	a, err := newWindowArray(data, count, DefaultDimOrder())
	if err != nil {
		return nil, err
	}
	return ReduceDims(a, []string{LeadTimeDim, EnsMemberDim, TimeDim})
}

// EnsembleSeries returns the non-forecast ensemble series of one station
// as an [ens_member, time] array. The variable must be laid out on
// [station, ens_member, time].
func (d *Dataset) EnsembleSeries(v string, stationIdx int) (*NamedArray, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	if err := d.checkVarDims(v, EnsembleSeries.Dims()); err != nil {
		return nil, err
	}
	begin := []int{stationIdx, 0, 0}
	count := []int{1, d.EnsembleSize(), len(d.times)}
	data, err := readWindow(d.nc, v, begin, count)
	if err != nil {
		return nil, err
	}
	a, err := newWindowArray(data, count, EnsembleSeries.Dims())
	if err != nil {
		return nil, err
	}
	return ReduceDims(a, []string{EnsMemberDim, TimeDim})
}

// SingleSeries returns the point series of one station as a [time] array.
// The variable must be laid out on [station, time].
func (d *Dataset) SingleSeries(v string, stationIdx int) (*NamedArray, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	if err := d.checkVarDims(v, PointSeries.Dims()); err != nil {
		return nil, err
	}
	begin := []int{stationIdx, 0}
	count := []int{1, len(d.times)}
	data, err := readWindow(d.nc, v, begin, count)
	if err != nil {
		return nil, err
	}
	a, err := newWindowArray(data, count, PointSeries.Dims())
	if err != nil {
		return nil, err
	}
	return ReduceDims(a, []string{TimeDim})
}

// AllSeries returns the point series of every station as a
// [time, station] array.
func (d *Dataset) AllSeries(v string) (*NamedArray, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	if err := d.checkVarDims(v, PointSeries.Dims()); err != nil {
		return nil, err
	}
	data, shape, err := readVar64(d.nc, v)
	if err != nil {
		return nil, err
	}
	a, err := newWindowArray(data, shape, PointSeries.Dims())
	if err != nil {
		return nil, err
	}
	return ReduceDims(a, []string{TimeDim, StationDim})
}

// PutEnsembleForecasts writes the forecast issued at time index timeIdx
// for the station at stationIdx. The array must be laid out on
// [lead_time, ens_member] with the sizes of the file's dimensions.
func (d *Dataset) PutEnsembleForecasts(v string, stationIdx, timeIdx int, a *NamedArray) error {
	if err := d.checkWritable(); err != nil {
		return err
	}
	if err := d.checkVarDims(v, DefaultDimOrder()); err != nil {
		return err
	}
	if err := checkArrayDims(a, []string{LeadTimeDim, EnsMemberDim},
		[]int{d.LeadTimeCount(), d.EnsembleSize()}); err != nil {
		return err
	}
	begin := []int{0, stationIdx, 0, timeIdx}
	count := []int{d.LeadTimeCount(), 1, d.EnsembleSize(), 1}
	return writeWindow(d.nc, v, begin, count, a.Data.Elements)
}

// PutEnsembleSeries writes the ensemble series of one station. The array
// must be laid out on [ens_member, time].
func (d *Dataset) PutEnsembleSeries(v string, stationIdx int, a *NamedArray) error {
	if err := d.checkWritable(); err != nil {
		return err
	}
	if err := d.checkVarDims(v, EnsembleSeries.Dims()); err != nil {
		return err
	}
	if err := checkArrayDims(a, []string{EnsMemberDim, TimeDim},
		[]int{d.EnsembleSize(), len(d.times)}); err != nil {
		return err
	}
	begin := []int{stationIdx, 0, 0}
	count := []int{1, d.EnsembleSize(), len(d.times)}
	return writeWindow(d.nc, v, begin, count, a.Data.Elements)
}

// PutSingleSeries writes the point series of one station. values must
// hold one value per time axis instant.
func (d *Dataset) PutSingleSeries(v string, stationIdx int, values []float64) error {
	if err := d.checkWritable(); err != nil {
		return err
	}
	if err := d.checkVarDims(v, PointSeries.Dims()); err != nil {
		return err
	}
	if len(values) != len(d.times) {
		return dimErrorf("series of variable %s holds %d values, got %d",
			v, len(d.times), len(values))
	}
	begin := []int{stationIdx, 0}
	count := []int{1, len(d.times)}
	return writeWindow(d.nc, v, begin, count, values)
}

// PutValues overwrites the full contents of a conventional numeric
// variable, refreshing the affected caches.
func (d *Dataset) PutValues(v string, values []float64) error {
	if err := d.checkWritable(); err != nil {
		return err
	}
	if !isConventional(v) {
		return fmt.Errorf("efts: variable %s is not a conventional variable; use the series writers", v)
	}
	if v == StationNameVar {
		return fmt.Errorf("efts: variable %s holds characters; use PutStationNames", v)
	}
	if err := writeVar64(d.nc, v, values); err != nil {
		return err
	}
	switch v {
	case StationIDVar:
		d.stationIDs = make([]string, len(values))
		for i, id := range values {
			d.stationIDs[i] = strconv.FormatInt(int64(id), 10)
		}
	case TimeDim:
		units := attrString(d.nc.Header, TimeDim, UnitsAttr)
		times, err := decodeTimeAxis(values, units)
		if err != nil {
			return err
		}
		d.times = times
	}
	return nil
}

// PutLeadTimeValues overwrites the lead_time coordinate values.
func (d *Dataset) PutLeadTimeValues(values []float64) error {
	if err := d.checkWritable(); err != nil {
		return err
	}
	if len(values) != d.LeadTimeCount() {
		return dimErrorf("the lead_time axis holds %d values, got %d",
			d.LeadTimeCount(), len(values))
	}
	return writeVar64(d.nc, LeadTimeDim, values)
}

// PutStationNames overwrites the station names, refreshing the cache.
func (d *Dataset) PutStationNames(names []string) error {
	if err := d.checkWritable(); err != nil {
		return err
	}
	if err := writeStrings(d.nc, StationNameVar, names); err != nil {
		return err
	}
	d.stationNames = append([]string(nil), names...)
	return nil
}

// UTCOffset reports the offset of the time axis from UTC. This version
// only records the time standard annotation and cannot derive an offset.
func (d *Dataset) UTCOffset() (time.Duration, error) {
	return 0, &NotImplementedError{Op: "UTCOffset"}
}

// HasRequiredDimensions reports whether the file defines exactly the
// mandatory dimensions.
func (d *Dataset) HasRequiredDimensions() bool {
	return HasRequiredDimensions(d.nc.Header)
}

// HasRequiredGlobalAttributes reports whether the file carries all
// mandatory global attributes.
func (d *Dataset) HasRequiredGlobalAttributes() bool {
	return HasRequiredGlobalAttributes(d.nc.Header)
}

// HasRequiredVariables reports whether the file defines all mandatory
// variables.
func (d *Dataset) HasRequiredVariables() bool {
	return HasRequiredVariables(d.nc.Header)
}

func sortedVarNames(m map[string]*Variable) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func sortedAttrKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
