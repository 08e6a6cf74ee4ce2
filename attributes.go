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

// DefaultVarAttributes returns the standard attribute template attached to
// forecast data variables.
func DefaultVarAttributes() map[string]string {
	return map[string]string{
		"type":                 "2",
		"type_description":     "accumulated over the preceding interval",
		"dat_type":             "der",
		"dat_type_description": "AWAP data interpolated from observations",
		"location_type":        "Point",
	}
}

// NewGlobalAttributes assembles the mandatory global attributes of an EFTS
// file from the caller-provided fields, stamping the convention version and
// the convention specification locator.
func NewGlobalAttributes(title, institution, source, catchment, comment string) map[string]string {
	return map[string]string{
		TitleAttr:             title,
		InstitutionAttr:       institution,
		SourceAttr:            source,
		CatchmentAttr:         catchment,
		ConventionVersionAttr: ConventionVersion,
		ConventionSpecAttr:    ConventionSpecURL,
		CommentAttr:           comment,
		HistoryAttr:           "",
	}
}

// CheckGlobalAttributes verifies that attrs carries every mandatory global
// attribute key. Extra keys are allowed. The history attribute may be empty;
// Create appends its own line to it.
func CheckGlobalAttributes(attrs map[string]string) error {
	var missing []string
	for _, key := range MandatoryGlobalAttributes {
		if _, ok := attrs[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("efts: missing mandatory global attributes: %s",
			strings.Join(missing, ", "))
	}
	return nil
}

// PadHistory appends a time-stamped line to an existing history attribute
// value, separating entries with newlines.
func PadHistory(history, line string, at time.Time) string {
	entry := at.UTC().Format("2006-01-02 15:04:05 UTC") + " - " + line
	if history == "" {
		return entry
	}
	return history + "\n" + entry
}
