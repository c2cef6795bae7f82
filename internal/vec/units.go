package vec

import (
	"strings"

	"github.com/openpiv/pivgo/internal/fsutil"
	"github.com/openpiv/pivgo/internal/units"
)

// variablesMarker introduces the unit declarations in a .vec header.
const variablesMarker = "VARIABLES="

// unitOffset is the distance from a variable's opening quote to the
// start of its unit string: the quote, the variable letter and one
// separator character, as in `"X mm"`.
const unitOffset = 3

// ReadUnits recovers the length, velocity and time units from the named
// file's header.
//
// When the header carries no VARIABLES= declaration past its first
// token, the zero Triple is returned with found == false and no defaults
// are applied; the caller decides what an unlabeled file means. When the
// declaration is present, fields that could not be extracted fall back
// to the given defaults. Fields extracted as empty strings are kept
// empty, not defaulted.
func ReadUnits(fsys fsutil.FileSystem, path string, defaults units.Triple) (t units.Triple, found bool, err error) {
	line, err := readHeaderLine(fsys, path)
	if err != nil {
		return units.Triple{}, false, err
	}

	// A marker at offset zero counts as absent: every producer of this
	// format emits a TITLE= clause first, so a leading VARIABLES= means
	// the header is not one of theirs.
	marker := strings.Index(line, variablesMarker)
	if marker <= 0 {
		return units.Triple{}, false, nil
	}

	length, lengthOK := quotedUnit(line[marker:], 'X')
	velocity, velocityOK := quotedUnit(line[marker:], 'U')

	var timeUnit string
	if velocityOK {
		timeUnit = units.DeriveTime(velocity)
		if timeUnit == "" {
			return units.Triple{}, true, parseErrorf(path, "velocity unit %q has no time denominator", velocity)
		}
	} else {
		velocity = defaults.Velocity
		timeUnit = defaults.Time
	}

	if !lengthOK {
		length = defaults.Length
	}

	return units.Triple{Length: length, Velocity: velocity, Time: timeUnit}, true, nil
}

// quotedUnit finds the first quoted token opening with the given
// variable letter, as in `"X mm"`, and returns the unit substring
// starting unitOffset characters past the opening quote. ok is false
// when no such token exists.
func quotedUnit(s string, variable byte) (unit string, ok bool) {
	open := strings.Index(s, `"`+string(variable))
	if open < 0 {
		return "", false
	}

	end := strings.Index(s[open+1:], `"`)
	if end < 0 {
		return "", false
	}
	end += open + 1

	if open+unitOffset > end {
		return "", true
	}
	return s[open+unitOffset : end], true
}
