package domain

import "strings"

type Hotel struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	City         string   `json:"city"`
	Area         string   `json:"area"`
	NightlyPrice int64    `json:"nightly_price"` // smallest currency unit
	Rating       float64  `json:"rating"`
	Description  string   `json:"description"`
	ImagePath    string   `json:"image_path"`
	Amenities    []string `json:"amenities"`
}

// amenities are stored as a single comma-delimited column
const amenitySep = ","

func JoinAmenities(a []string) string { return strings.Join(a, amenitySep) }

func SplitAmenities(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, amenitySep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
