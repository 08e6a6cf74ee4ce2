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

import "fmt"

// NotFoundError is returned when an identifier or time stamp cannot be
// located in a coordinate variable.
type NotFoundError struct {
	Identifier string
	Dimension  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("efts: identifier '%s' not found in the dimension '%s'",
		e.Identifier, e.Dimension)
}

// DimensionError is returned for structural violations: a position vector
// of the wrong length, unknown or duplicate dimension names, or an attempt
// to drop a non-degenerate dimension.
type DimensionError struct {
	Problem string
}

func (e *DimensionError) Error() string { return "efts: " + e.Problem }

func dimErrorf(format string, args ...interface{}) *DimensionError {
	return &DimensionError{Problem: fmt.Sprintf(format, args...)}
}

// NotImplementedError is returned by operations that this version of the
// library does not support. No side effect has occurred when it is returned.
type NotImplementedError struct {
	Op string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("efts: %s is not implemented", e.Op)
}
