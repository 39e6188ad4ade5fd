//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// InterviewMode is how an interview is conducted.
type InterviewMode string

const (
	InterviewModeOnline  InterviewMode = "online"
	InterviewModeOffline InterviewMode = "offline"
)

// InterviewStatus is the scheduling state of an interview.
type InterviewStatus string

const (
	InterviewStatusScheduled InterviewStatus = "scheduled"
	InterviewStatusCompleted InterviewStatus = "completed"
	InterviewStatusCancelled InterviewStatus = "cancelled"
)

// InterviewResult is the outcome recorded after an interview.
type InterviewResult string

const (
	InterviewResultPending  InterviewResult = "pending"
	InterviewResultSelected InterviewResult = "selected"
	InterviewResultRejected InterviewResult = "rejected"
)

// Interview is a scheduled interview for an application.
type Interview struct {
	ID            string
	ApplicationID string
	At            time.Time
	Mode          InterviewMode
	Location      string
	MeetingLink   string
	Status        InterviewStatus
	Feedback      string
	Result        InterviewResult
}

// Upcoming reports whether the interview is scheduled at or after now.
func (i *Interview) Upcoming(now time.Time) bool {
	return i.Status == InterviewStatusScheduled && !i.At.Before(now)
}
