package validation

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var atCoordinates = regexp.MustCompile(`@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)

// CoordinatesFromGoogleMapsURL extracts a latitude/longitude pair from a Google Maps link.
// Supported forms are https://www.google.com/maps?q=40.4167,-3.7037 and
// https://www.google.com/maps/@40.4167,-3.7037,15z. Short links are not followed.
func CoordinatesFromGoogleMapsURL(raw string) (lat, lon float64, ok bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return 0, 0, false
	}

	if q := u.Query().Get("q"); q != "" {
		parts := strings.Split(q, ",")
		if len(parts) == 2 {
			if lat, lon, ok := parsePair(parts[0], parts[1]); ok {
				return lat, lon, true
			}
		}
	}

	if m := atCoordinates.FindStringSubmatch(u.Path); m != nil {
		return parsePair(m[1], m[2])
	}
	return 0, 0, false
}

func parsePair(a, b string) (float64, float64, bool) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return 0, 0, false
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return 0, 0, false
	}
	return lat, lon, true
}
