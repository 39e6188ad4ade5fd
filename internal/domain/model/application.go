//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// ApplicationStatus tracks an application through the placement pipeline.
type ApplicationStatus string

const (
	ApplicationStatusPending            ApplicationStatus = "pending"
	ApplicationStatusApproved           ApplicationStatus = "approved"
	ApplicationStatusRejected           ApplicationStatus = "rejected"
	ApplicationStatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	ApplicationStatusSelected           ApplicationStatus = "selected"
	ApplicationStatusCompleted          ApplicationStatus = "completed"
)

// Active reports whether the application is still moving through the pipeline.
func (s ApplicationStatus) Active() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusInterviewScheduled:
		return true
	default:
		return false
	}
}

// ApprovalStatus is the faculty decision on an application.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// Application is a student's application to an internship.
type Application struct {
	ID                    string
	StudentID             string // identity ID of the applicant
	InternshipID          string
	Status                ApplicationStatus
	AppliedDate           time.Time
	CoverLetter           string
	FacultyApprovalStatus ApprovalStatus
	FacultyComments       string
	InterviewDate         *time.Time
	Feedback              string
	Rating                *int
}
