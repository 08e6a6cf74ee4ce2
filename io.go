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
	"io"
	"strings"

	"github.com/ctessum/cdf"
)

// toFloat64 converts a typed slice read from a netCDF variable to float64s.
func toFloat64(buf interface{}) ([]float64, error) {
	switch b := buf.(type) {
	case []float64:
		return b, nil
	case []float32:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, nil
	case []int32:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, nil
	case []int16:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, nil
	case []uint8:
		out := make([]float64, len(b))
		for i, v := range b {
			out[i] = float64(v)
		}
		return out, nil
	}
	return nil, fmt.Errorf("efts: unsupported netCDF value type %T", buf)
}

// fromFloat64 converts float64 data to the value type of variable v,
// as reported by the file header.
func fromFloat64(h *cdf.Header, v string, data []float64) (interface{}, error) {
	switch h.ZeroValue(v, 0).(type) {
	case []float64:
		return data, nil
	case []float32:
		out := make([]float32, len(data))
		for i, x := range data {
			out[i] = float32(x)
		}
		return out, nil
	case []int32:
		out := make([]int32, len(data))
		for i, x := range data {
			out[i] = int32(x)
		}
		return out, nil
	case []int16:
		out := make([]int16, len(data))
		for i, x := range data {
			out[i] = int16(x)
		}
		return out, nil
	}
	return nil, fmt.Errorf("efts: unsupported netCDF value type for variable %s", v)
}

// readVar64 reads the full contents of a numeric variable as float64s,
// along with its shape.
func readVar64(nc *cdf.File, v string) ([]float64, []int, error) {
	shape := nc.Header.Lengths(v)
	if shape == nil {
		return nil, nil, fmt.Errorf("efts: no variable %s in file", v)
	}
	r := nc.Reader(v, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil && err != io.EOF {
		return nil, nil, fmt.Errorf("efts: reading variable %s: %v", v, err)
	}
	data, err := toFloat64(buf)
	if err != nil {
		return nil, nil, err
	}
	return data, shape, nil
}

// writeVar64 overwrites the full contents of a numeric variable.
func writeVar64(nc *cdf.File, v string, data []float64) error {
	vals, err := fromFloat64(nc.Header, v, data)
	if err != nil {
		return err
	}
	w := nc.Writer(v, nil, nil)
	if _, err := w.Write(vals); err != nil && err != io.EOF {
		return fmt.Errorf("efts: writing variable %s: %v", v, err)
	}
	return nil
}

// runSplit computes the contiguous-run decomposition of a hyperslab
// window over a row-major array. It returns the length of one contiguous
// run in elements and the number of outer dimensions that must be
// iterated; dimensions at and beyond the returned outer count form each
// run. The striding netCDF reader only stripes record variables, so
// windowed access to fixed-size variables has to go run by run.
func runSplit(shape, begin, count []int) (outer, run int) {
	t := len(shape)
	for t > 0 && begin[t-1] == 0 && count[t-1] == shape[t-1] {
		t--
	}
	run = 1
	for j := t; j < len(shape); j++ {
		run *= shape[j]
	}
	if t > 0 {
		run *= count[t-1]
		t--
	}
	return t, run
}

// checkWindow validates a hyperslab window against a variable's shape.
func checkWindow(v string, shape, begin, count []int) error {
	if len(begin) != len(shape) || len(count) != len(shape) {
		return dimErrorf("window rank does not match variable %s of rank %d", v, len(shape))
	}
	for i := range shape {
		if begin[i] < 0 || count[i] < 1 || begin[i]+count[i] > shape[i] {
			return dimErrorf("window [%d,%d) out of range for axis %d of variable %s (size %d)",
				begin[i], begin[i]+count[i], i, v, shape[i])
		}
	}
	return nil
}

// forEachRun calls fn once per contiguous run of the window, passing the
// starting corner of the run and the offset of the run within the window.
func forEachRun(begin, count []int, outer, run int, fn func(corner []int, off int) error) error {
	idx := make([]int, len(begin))
	copy(idx, begin)
	off := 0
	for {
		if err := fn(idx, off); err != nil {
			return err
		}
		off += run
		// Advance the odometer over the outer dimensions.
		i := outer - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < begin[i]+count[i] {
				break
			}
			idx[i] = begin[i]
		}
		if i < 0 {
			return nil
		}
	}
}

// readWindow reads the hyperslab window [begin, begin+count) of a numeric
// variable as float64s in row-major window order.
func readWindow(nc *cdf.File, v string, begin, count []int) ([]float64, error) {
	shape := nc.Header.Lengths(v)
	if shape == nil {
		return nil, fmt.Errorf("efts: no variable %s in file", v)
	}
	if err := checkWindow(v, shape, begin, count); err != nil {
		return nil, err
	}
	n := 1
	for _, c := range count {
		n *= c
	}
	out := make([]float64, n)
	outer, run := runSplit(shape, begin, count)
	err := forEachRun(begin, count, outer, run, func(corner []int, off int) error {
		r := nc.Reader(v, corner, nil)
		buf := r.Zero(run)
		if _, err := r.Read(buf); err != nil && err != io.EOF {
			return fmt.Errorf("efts: reading variable %s: %v", v, err)
		}
		vals, err := toFloat64(buf)
		if err != nil {
			return err
		}
		copy(out[off:off+run], vals)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// writeWindow writes data, in row-major window order, to the hyperslab
// window [begin, begin+count) of a numeric variable.
func writeWindow(nc *cdf.File, v string, begin, count []int, data []float64) error {
	shape := nc.Header.Lengths(v)
	if shape == nil {
		return fmt.Errorf("efts: no variable %s in file", v)
	}
	if err := checkWindow(v, shape, begin, count); err != nil {
		return err
	}
	n := 1
	for _, c := range count {
		n *= c
	}
	if len(data) != n {
		return dimErrorf("window of variable %s holds %d values, got %d", v, n, len(data))
	}
	outer, run := runSplit(shape, begin, count)
	return forEachRun(begin, count, outer, run, func(corner []int, off int) error {
		vals, err := fromFloat64(nc.Header, v, data[off:off+run])
		if err != nil {
			return err
		}
		w := nc.Writer(v, corner, nil)
		if _, err := w.Write(vals); err != nil && err != io.EOF {
			return fmt.Errorf("efts: writing variable %s: %v", v, err)
		}
		return nil
	})
}

// readStrings decodes a char matrix variable of shape [str_len, n] into n
// strings, trimming trailing NUL and space padding.
func readStrings(nc *cdf.File, v string) ([]string, error) {
	shape := nc.Header.Lengths(v)
	if shape == nil {
		return nil, fmt.Errorf("efts: no variable %s in file", v)
	}
	if len(shape) != 2 {
		return nil, dimErrorf("variable %s is not a char matrix", v)
	}
	strLen, n := shape[0], shape[1]
	r := nc.Reader(v, nil, nil)
	buf := r.Zero(-1).([]uint8)
	if _, err := r.Read(buf); err != nil && err != io.EOF {
		return nil, fmt.Errorf("efts: reading variable %s: %v", v, err)
	}
	out := make([]string, n)
	chars := make([]byte, strLen)
	for s := 0; s < n; s++ {
		for i := 0; i < strLen; i++ {
			chars[i] = buf[i*n+s]
		}
		str := string(chars)
		if j := strings.IndexByte(str, 0); j >= 0 {
			str = str[:j]
		}
		out[s] = strings.TrimRight(str, " ")
	}
	return out, nil
}

// writeStrings encodes n strings into a char matrix variable of shape
// [str_len, n], NUL-padding and truncating to str_len.
func writeStrings(nc *cdf.File, v string, values []string) error {
	shape := nc.Header.Lengths(v)
	if shape == nil {
		return fmt.Errorf("efts: no variable %s in file", v)
	}
	if len(shape) != 2 {
		return dimErrorf("variable %s is not a char matrix", v)
	}
	strLen, n := shape[0], shape[1]
	if len(values) != n {
		return dimErrorf("variable %s holds %d strings, got %d", v, n, len(values))
	}
	buf := make([]uint8, strLen*n)
	for s, str := range values {
		if len(str) > strLen {
			str = str[:strLen]
		}
		for i := 0; i < len(str); i++ {
			buf[i*n+s] = str[i]
		}
	}
	w := nc.Writer(v, nil, nil)
	if _, err := w.Write(buf); err != nil && err != io.EOF {
		return fmt.Errorf("efts: writing variable %s: %v", v, err)
	}
	return nil
}

// attrString fetches a string-valued attribute of a variable (or a global
// attribute when v is empty), returning "" when absent.
func attrString(h *cdf.Header, v, name string) string {
	a := h.GetAttribute(v, name)
	if a == nil {
		return ""
	}
	if s, ok := a.(string); ok {
		return s
	}
	return ""
}
