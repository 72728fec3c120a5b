package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/tripbooking/internal/calendar"
)

func parseDate(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation(calendar.ISODate, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a YYYY-MM-DD date", field)
	}
	return t, nil
}

// parsePriceRange decodes the "min-max" filter (prices per night in
// whole currency units) into cent bounds; either side may be omitted.
func parsePriceRange(value string) (minCents, maxCents int64, err error) {
	parts := strings.SplitN(value, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("price range must look like min-max")
	}
	if parts[0] != "" {
		low, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, 0, fmt.Errorf("price range lower bound is not a number")
		}
		minCents = int64(low * 100)
	}
	if parts[1] != "" {
		high, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, 0, fmt.Errorf("price range upper bound is not a number")
		}
		maxCents = int64(high * 100)
	}
	return minCents, maxCents, nil
}
