// Package season resolves compact transfer season labels ("10/11") to the
// canonical prior-season label used by the statistics source ("2009-2010").
package season

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/rotisserie/eris"
)

// CenturyPivot disambiguates two-digit years: values at or below the pivot
// map to 2000+YY, values above it to 1900+YY. "10/11" is 2010-2011 while
// "98/99" is 1998-1999. The dataset contains no century-boundary transfers,
// but the cutoff is pinned here (and by tests) rather than inferred.
const CenturyPivot = 30

// ErrMalformed is returned when a transfer season string does not match the
// "YY/ZZ" short form with consecutive years.
var ErrMalformed = eris.New("season: malformed transfer season label")

var shortForm = regexp.MustCompile(`^(\d{2})/(\d{2})$`)

// ExpandYear maps a two-digit year to a full year using CenturyPivot.
func ExpandYear(yy int) int {
	if yy <= CenturyPivot {
		return 2000 + yy
	}
	return 1900 + yy
}

// Parse validates a compact transfer season label and returns the full
// four-digit start year of the season it names.
func Parse(transferSeason string) (int, error) {
	m := shortForm.FindStringSubmatch(transferSeason)
	if m == nil {
		return 0, eris.Wrapf(ErrMalformed, "parse %q", transferSeason)
	}

	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if (start+1)%100 != end {
		return 0, eris.Wrapf(ErrMalformed, "parse %q: years are not consecutive", transferSeason)
	}

	return ExpandYear(start), nil
}

// ResolvePrior converts a transfer season label to the canonical label of
// the season immediately before it: "10/11" -> "2009-2010". The prior season
// is the one whose statistics describe the player at the moment of transfer.
func ResolvePrior(transferSeason string) (string, error) {
	startYear, err := Parse(transferSeason)
	if err != nil {
		return "", err
	}
	return Format(startYear - 1), nil
}

// Format renders the canonical label for the season starting in startYear.
func Format(startYear int) string {
	return fmt.Sprintf("%d-%d", startYear, startYear+1)
}
