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

	"github.com/ctessum/sparse"
)

// A NamedArray pairs a dense array with one name per axis. The names
// must be unique and their count must equal the rank of the array.
type NamedArray struct {
	Data *sparse.DenseArray
	Dims []string
}

// NewNamedArray attaches the given dimension names to data.
func NewNamedArray(data *sparse.DenseArray, dims ...string) (*NamedArray, error) {
	if data == nil {
		return nil, dimErrorf("cannot attach dimension names to a nil array")
	}
	if len(dims) != len(data.Shape) {
		return nil, dimErrorf("%d dimension names do not match array rank %d",
			len(dims), len(data.Shape))
	}
	seen := make(map[string]struct{}, len(dims))
	for _, d := range dims {
		if _, ok := seen[d]; ok {
			return nil, dimErrorf("dimension name %q is repeated", d)
		}
		seen[d] = struct{}{}
	}
	return &NamedArray{Data: data, Dims: append([]string(nil), dims...)}, nil
}

// index returns the axis position of the named dimension, or -1.
func (a *NamedArray) index(dim string) int {
	for i, d := range a.Dims {
		if d == dim {
			return i
		}
	}
	return -1
}

// Size returns the length of the named axis and whether the axis exists.
func (a *NamedArray) Size(dim string) (int, bool) {
	i := a.index(dim)
	if i < 0 {
		return 0, false
	}
	return a.Data.Shape[i], true
}

// SpliceDims slices a length-4 position vector, whose elements refer to
// the [lead_time, station, ens_member, time] dimensions in that order,
// down to the named dimensions. The result holds the values of d at the
// requested dimensions, in the requested order, paired with their names.
// An empty dims slice selects all four dimensions in the default order.
func SpliceDims(d []int, dims []string) ([]int, []string, error) {
	order := DefaultDimOrder()
	if len(d) != len(order) {
		return nil, nil, dimErrorf("a position vector must have exactly %d elements, got %d",
			len(order), len(d))
	}
	if len(dims) == 0 {
		return append([]int(nil), d...), order, nil
	}
	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}
	var invalid []string
	out := make([]int, 0, len(dims))
	for _, name := range dims {
		i, ok := pos[name]
		if !ok {
			invalid = append(invalid, name)
			continue
		}
		out = append(out, d[i])
	}
	if len(invalid) > 0 {
		return nil, nil, dimErrorf("invalid dimensions for a data variable: %s",
			strings.Join(invalid, ","))
	}
	return out, append([]string(nil), dims...), nil
}

// newWindowArray wraps row-major data of the given shape in a NamedArray.
func newWindowArray(data []float64, shape []int, dims []string) (*NamedArray, error) {
	n := 1
	for _, s := range shape {
		n *= s
	}
	if len(data) != n {
		return nil, dimErrorf("array of shape %v holds %d values, got %d", shape, n, len(data))
	}
	arr := sparse.ZerosDense(shape...)
	copy(arr.Elements, data)
	return NewNamedArray(arr, dims...)
}

// checkArrayDims verifies that a carries exactly the given dimension
// names, in order, with the given sizes.
func checkArrayDims(a *NamedArray, dims []string, sizes []int) error {
	if a == nil || a.Data == nil {
		return dimErrorf("the input array must have valid dimension names")
	}
	if len(a.Dims) != len(dims) {
		return dimErrorf("array has dimensions %v, want %v", a.Dims, dims)
	}
	for i := range dims {
		if a.Dims[i] != dims[i] {
			return dimErrorf("array has dimensions %v, want %v", a.Dims, dims)
		}
		if a.Data.Shape[i] != sizes[i] {
			return dimErrorf("axis %q has size %d, want %d", dims[i], a.Data.Shape[i], sizes[i])
		}
	}
	return nil
}

// ReduceDims returns a new array holding exactly the axes named in dims,
// in that order. Axes of a present in the input but absent from dims are
// dropped; dropping an axis of size greater than one is an error, as the
// data it holds cannot be discarded silently. An axis named in dims is
// always retained in the output even when its size is one, whereas a
// plain squeeze would eliminate it. A nil dims slice defaults to the
// axes of size greater than one, in input order.
func ReduceDims(a *NamedArray, dims []string) (*NamedArray, error) {
	if a == nil || a.Data == nil {
		return nil, dimErrorf("the input array must have valid dimension names")
	}
	if len(a.Dims) != len(a.Data.Shape) {
		return nil, dimErrorf("the input array and its dimension names are differing in length")
	}
	if dims == nil {
		for i, name := range a.Dims {
			if a.Data.Shape[i] > 1 {
				dims = append(dims, name)
			}
		}
	}

	var missing []string
	for _, name := range dims {
		if a.index(name) < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, dimErrorf("dimension names to slice but not found in array dim names: %s",
			strings.Join(missing, ", "))
	}
	seen := make(map[string]struct{}, len(dims))
	for _, name := range dims {
		if _, ok := seen[name]; ok {
			return nil, dimErrorf("dimension name %q is repeated", name)
		}
		seen[name] = struct{}{}
	}
	for i, name := range a.Dims {
		if _, ok := seen[name]; !ok && a.Data.Shape[i] > 1 {
			return nil, dimErrorf("cannot drop non-degenerate dimension %q of size %d",
				name, a.Data.Shape[i])
		}
	}

	// Positions of the target axes within the input, in target order.
	// Dropped axes all have size one and contribute index zero.
	perm := make([]int, len(dims))
	shape := make([]int, len(dims))
	for k, name := range dims {
		i := a.index(name)
		perm[k] = i
		shape[k] = a.Data.Shape[i]
	}

	out := sparse.ZerosDense(shape...)
	in := make([]int, len(a.Dims))
	for flat := range out.Elements {
		idx := out.IndexNd(flat)
		for i := range in {
			in[i] = 0
		}
		for k, i := range perm {
			in[i] = idx[k]
		}
		out.Elements[flat] = a.Data.Get(in...)
	}
	return &NamedArray{Data: out, Dims: append([]string(nil), dims...)}, nil
}
