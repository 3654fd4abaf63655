package entity

import (
	"regexp"
	"strings"
	"time"
)

// Careers a bootcamp can teach. Incoming payloads are validated against this set.
var Careers = []string{
	"Web Development",
	"Mobile Development",
	"UI/UX",
	"Data Science",
	"Business",
	"Other",
}

// Location is the geocoded point plus locality fields derived from the
// address a publisher submits. The raw address itself is never stored.
type Location struct {
	Type             string    `json:"type"`
	Coordinates      []float64 `json:"coordinates"` // [longitude, latitude]
	FormattedAddress string    `json:"formattedAddress,omitempty"`
	Street           string    `json:"street,omitempty"`
	City             string    `json:"city,omitempty"`
	State            string    `json:"state,omitempty"`
	Zipcode          string    `json:"zipcode,omitempty"`
	Country          string    `json:"country,omitempty"`
}

// Bootcamp is the primary listed entity. AverageRating and AverageCost are
// derived from reviews and courses; nil means no dependent records exist.
type Bootcamp struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Email         string    `json:"email,omitempty"`
	Website       string    `json:"website,omitempty"`
	Careers       []string  `json:"careers"`
	Location      Location  `json:"location"`
	AverageRating *float64  `json:"averageRating,omitempty"`
	AverageCost   *float64  `json:"averageCost,omitempty"`
	Photo         string    `json:"photo"`
	Housing       bool      `json:"housing"`
	JobAssistance bool      `json:"jobAssistance"`
	JobGuarantee  bool      `json:"jobGuarantee"`
	AcceptGi      bool      `json:"acceptGi"`
	UserID        string    `json:"user"`
	CreatedAt     time.Time `json:"createdAt"`

	// Populated on demand, never stored.
	Courses []*Course `json:"courses,omitempty"`
}

// Summary is the slice of a bootcamp attached to populated courses/reviews.
type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL slug from a bootcamp name ("Devworks Bootcamp" ->
// "devworks-bootcamp").
func Slugify(name string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// ValidCareer reports whether c is in the allowed careers enumeration.
func ValidCareer(c string) bool {
	for _, v := range Careers {
		if v == c {
			return true
		}
	}
	return false
}
