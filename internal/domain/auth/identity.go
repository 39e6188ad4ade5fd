package auth

import "strings"

// Profile holds the attributes every identity carries regardless of role.
type Profile struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Avatar    string
}

// Identity is the authenticated principal. It is a closed set of variants:
// *Student, *Faculty, *PlacementOfficer and *Recruiter, plus *Unrecognized for
// persisted records whose role is no longer known. Each variant carries only
// its own extension fields and reports a fixed Role.
type Identity interface {
	Role() Role
	Base() Profile
	identity()
}

// Student is the identity of an enrolled student.
type Student struct {
	Profile
	StudentID   string
	Department  string
	Year        int
	CGPA        *float64
	Skills      []string
	Phone       string
	ResumeURL   string
	LinkedInURL string
	GitHubURL   string
}

// Faculty is the identity of a faculty member who approves applications.
type Faculty struct {
	Profile
	EmployeeID  string
	Department  string
	Designation string
}

// PlacementOfficer is the identity of a placement cell staff member.
type PlacementOfficer struct {
	Profile
	EmployeeID string
	Position   string
}

// Recruiter is the identity of a company representative.
type Recruiter struct {
	Profile
	CompanyName    string
	Position       string
	CompanyWebsite string
}

// Unrecognized is a restored identity whose role matches no known variant.
// It only comes from stale persisted data; login never produces it.
type Unrecognized struct {
	Profile
	RawRole string
}

func (*Student) Role() Role          { return RoleStudent }
func (*Faculty) Role() Role          { return RoleFaculty }
func (*PlacementOfficer) Role() Role { return RolePlacementCell }
func (*Recruiter) Role() Role        { return RoleRecruiter }
func (u *Unrecognized) Role() Role   { return Role(u.RawRole) }

func (s *Student) Base() Profile          { return s.Profile }
func (f *Faculty) Base() Profile          { return f.Profile }
func (p *PlacementOfficer) Base() Profile { return p.Profile }
func (r *Recruiter) Base() Profile        { return r.Profile }
func (u *Unrecognized) Base() Profile     { return u.Profile }

func (*Student) identity()          {}
func (*Faculty) identity()          {}
func (*PlacementOfficer) identity() {}
func (*Recruiter) identity()        {}
func (*Unrecognized) identity()     {}

// DisplayName joins the first and last names of id.
func DisplayName(id Identity) string {
	if id == nil {
		return ""
	}
	p := id.Base()
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// SameIdentity reports whether a and b refer to the same principal in the same role.
func SameIdentity(a, b Identity) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Base().ID == b.Base().ID && a.Role() == b.Role()
}
