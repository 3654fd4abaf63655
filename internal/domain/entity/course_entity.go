package entity

import "time"

// Skill levels a course may require.
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// Course belongs to a bootcamp; authorship is fixed at creation.
type Course struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Weeks                string    `json:"weeks"`
	Tuition              float64   `json:"tuition"`
	MinimumSkill         string    `json:"minimumSkill"`
	ScholarshipAvailable bool      `json:"scholarshipAvailable"`
	BootcampID           string    `json:"bootcamp"`
	UserID               string    `json:"user"`
	CreatedAt            time.Time `json:"createdAt"`

	// Populated on demand, never stored.
	Bootcamp *Summary `json:"bootcampInfo,omitempty"`
}
