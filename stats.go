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
	"github.com/gonum/floats"
)

// ensembleRows returns the member series of a as contiguous rows. The
// array must be laid out on [ens_member, t] for some inner axis t.
func ensembleRows(a *NamedArray) ([][]float64, error) {
	if a == nil || a.Data == nil {
		return nil, dimErrorf("the input array must have valid dimension names")
	}
	if len(a.Dims) != 2 || a.Dims[0] != EnsMemberDim {
		return nil, dimErrorf("ensemble statistics need an [%s, ...] array, got %v",
			EnsMemberDim, a.Dims)
	}
	nEns, n := a.Data.Shape[0], a.Data.Shape[1]
	if nEns == 0 {
		return nil, dimErrorf("the %s axis is empty", EnsMemberDim)
	}
	rows := make([][]float64, nEns)
	for e := 0; e < nEns; e++ {
		rows[e] = a.Data.Elements[e*n : (e+1)*n]
	}
	return rows, nil
}

// EnsembleMean reduces an [ens_member, t] array to the arithmetic mean
// across the ensemble axis, keeping the inner axis.
func EnsembleMean(a *NamedArray) (*NamedArray, error) {
	rows, err := ensembleRows(a)
	if err != nil {
		return nil, err
	}
	mean := make([]float64, len(rows[0]))
	for _, row := range rows {
		floats.Add(mean, row)
	}
	floats.Scale(1/float64(len(rows)), mean)
	return newWindowArray(mean, []int{len(mean)}, []string{a.Dims[1]})
}

// EnsembleRange reduces an [ens_member, t] array to its per-step minimum
// and maximum across the ensemble axis.
func EnsembleRange(a *NamedArray) (min, max *NamedArray, err error) {
	rows, err := ensembleRows(a)
	if err != nil {
		return nil, nil, err
	}
	n := len(rows[0])
	lo := append([]float64(nil), rows[0]...)
	hi := append([]float64(nil), rows[0]...)
	for _, row := range rows[1:] {
		for i := 0; i < n; i++ {
			if row[i] < lo[i] {
				lo[i] = row[i]
			}
			if row[i] > hi[i] {
				hi[i] = row[i]
			}
		}
	}
	min, err = newWindowArray(lo, []int{n}, []string{a.Dims[1]})
	if err != nil {
		return nil, nil, err
	}
	max, err = newWindowArray(hi, []int{n}, []string{a.Dims[1]})
	if err != nil {
		return nil, nil, err
	}
	return min, max, nil
}
