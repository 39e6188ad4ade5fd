//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// InternshipType distinguishes internships from full placements.
type InternshipType string

const (
	InternshipTypeInternship InternshipType = "internship"
	InternshipTypePlacement  InternshipType = "placement"
)

// Internship is a posting published by the placement cell or a recruiter.
type Internship struct {
	ID                  string
	Title               string
	Company             string
	Description         string
	Requirements        []string
	Skills              []string
	Stipend             *int
	Duration            string
	Location            string
	Type                InternshipType
	ApplicationDeadline time.Time
	PostedDate          time.Time
	PostedBy            string // identity ID of the poster
	IsActive            bool
	Seats               int
	AppliedCount        int
}

// OpenAt reports whether the posting accepts applications at t.
func (i *Internship) OpenAt(t time.Time) bool {
	return i.IsActive && !t.After(i.ApplicationDeadline)
}
