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
	"time"
)

// timeUnitsLayout is the timestamp layout inside a CF-style time units
// string such as "hours since 2010-08-01 00:00:00".
const timeUnitsLayout = "2006-01-02 15:04:05"

// A TimeInfo describes a regular time axis: N instants starting at Start
// and separated by one Step each.
type TimeInfo struct {
	Start time.Time
	N     int
	Step  string // "seconds", "minutes", "hours" or "days"
}

// stepDuration returns the duration of one axis step.
func stepDuration(step string) (time.Duration, error) {
	switch step {
	case "seconds":
		return time.Second, nil
	case "minutes":
		return time.Minute, nil
	case "hours":
		return time.Hour, nil
	case "days":
		return 24 * time.Hour, nil
	}
	return 0, fmt.Errorf("efts: unsupported time step %q", step)
}

// Units returns the CF units string encoding the axis origin, e.g.
// "hours since 2010-08-01 00:00:00".
func (t *TimeInfo) Units() string {
	return t.Step + " since " + t.Start.UTC().Format(timeUnitsLayout)
}

// Values returns the integer offsets of each instant from the axis origin,
// in units of Step. The first instant is the origin itself.
func (t *TimeInfo) Values() []int32 {
	v := make([]int32, t.N)
	for i := range v {
		v[i] = int32(i)
	}
	return v
}

// Times materializes the axis instants.
func (t *TimeInfo) Times() ([]time.Time, error) {
	d, err := stepDuration(t.Step)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, t.N)
	for i := range out {
		out[i] = t.Start.Add(time.Duration(i) * d)
	}
	return out, nil
}

// parseTimeUnits splits a CF units string into its step and origin.
func parseTimeUnits(units string) (step string, origin time.Time, err error) {
	parts := strings.SplitN(units, " since ", 2)
	if len(parts) != 2 {
		return "", time.Time{}, fmt.Errorf("efts: cannot parse time units %q", units)
	}
	step = strings.TrimSpace(parts[0])
	if _, err = stepDuration(step); err != nil {
		return "", time.Time{}, err
	}
	stamp := strings.TrimSpace(parts[1])
	origin, err = time.Parse(timeUnitsLayout, stamp)
	if err != nil {
		// Tolerate a date-only origin.
		origin, err = time.Parse("2006-01-02", stamp)
		if err != nil {
			return "", time.Time{}, fmt.Errorf("efts: cannot parse time origin in %q", units)
		}
	}
	return step, origin.UTC(), nil
}

// decodeTimeAxis converts axis offsets and their units string to
// concrete instants.
func decodeTimeAxis(offsets []float64, units string) ([]time.Time, error) {
	step, origin, err := parseTimeUnits(units)
	if err != nil {
		return nil, err
	}
	d, err := stepDuration(step)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, len(offsets))
	for i, o := range offsets {
		// Offsets may be fractional, e.g. half days.
		out[i] = origin.Add(time.Duration(o * float64(d)))
	}
	return out, nil
}
