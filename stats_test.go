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
	"math"
	"reflect"
	"testing"

	"github.com/ctessum/sparse"
)

func ensembleArray(t *testing.T, rows [][]float64) *NamedArray {
	t.Helper()
	arr := sparse.ZerosDense(len(rows), len(rows[0]))
	for e, row := range rows {
		for i, v := range row {
			arr.Set(v, e, i)
		}
	}
	a, err := NewNamedArray(arr, EnsMemberDim, TimeDim)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestEnsembleMean(t *testing.T) {
	a := ensembleArray(t, [][]float64{
		{1, 2, 3},
		{3, 4, 5},
		{5, 6, 10},
	})
	mean, err := EnsembleMean(a)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(mean.Dims, []string{TimeDim}) {
		t.Errorf("have %#v, want [time]", mean.Dims)
	}
	want := []float64{3, 4, 6}
	for i, w := range want {
		if have := mean.Data.Get(i); math.Abs(have-w) > 1e-12 {
			t.Errorf("at %d: have %v, want %v", i, have, w)
		}
	}
}

func TestEnsembleRange(t *testing.T) {
	a := ensembleArray(t, [][]float64{
		{1, 9, 3},
		{3, 4, 5},
		{5, 6, 0},
	})
	min, max, err := EnsembleRange(a)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{1, 4, 0}; !reflect.DeepEqual(min.Data.Elements, want) {
		t.Errorf("have %#v, want %#v", min.Data.Elements, want)
	}
	if want := []float64{5, 9, 5}; !reflect.DeepEqual(max.Data.Elements, want) {
		t.Errorf("have %#v, want %#v", max.Data.Elements, want)
	}
}

func TestEnsembleMeanErrors(t *testing.T) {
	arr := sparse.ZerosDense(3, 2)
	a, err := NewNamedArray(arr, TimeDim, StationDim)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := EnsembleMean(a); err == nil {
		t.Error("an array without an outer ens_member axis should be rejected")
	}
}
