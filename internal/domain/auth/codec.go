package auth

import (
	"encoding/json"
	"fmt"
	"strings"
)

// profileRecord is the persisted shape shared by all variants.
// Field names match the record the dashboard has always stored under cipms_user.
type profileRecord struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
}

type studentRecord struct {
	profileRecord
	StudentID   string   `json:"studentId"`
	Department  string   `json:"department"`
	Year        int      `json:"year"`
	CGPA        *float64 `json:"cgpa,omitempty"`
	Skills      []string `json:"skills"`
	Phone       string   `json:"phone,omitempty"`
	ResumeURL   string   `json:"resumeUrl,omitempty"`
	LinkedInURL string   `json:"linkedinUrl,omitempty"`
	GitHubURL   string   `json:"githubUrl,omitempty"`
}

type facultyRecord struct {
	profileRecord
	EmployeeID  string `json:"employeeId"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
}

type placementRecord struct {
	profileRecord
	EmployeeID string `json:"employeeId"`
	Position   string `json:"position"`
}

type recruiterRecord struct {
	profileRecord
	CompanyName    string `json:"companyName"`
	Position       string `json:"position"`
	CompanyWebsite string `json:"companyWebsite,omitempty"`
}

func newProfileRecord(p Profile, r Role) profileRecord {
	return profileRecord{
		ID:        p.ID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Role:      r,
		Avatar:    p.Avatar,
	}
}

func (r profileRecord) profile() Profile {
	return Profile{
		ID:        r.ID,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Avatar:    r.Avatar,
	}
}

// EncodeIdentity serializes id as a tagged JSON record keyed by its role.
func EncodeIdentity(id Identity) ([]byte, error) {
	var rec any
	switch v := id.(type) {
	case *Student:
		rec = studentRecord{
			profileRecord: newProfileRecord(v.Profile, RoleStudent),
			StudentID:     v.StudentID,
			Department:    v.Department,
			Year:          v.Year,
			CGPA:          v.CGPA,
			Skills:        v.Skills,
			Phone:         v.Phone,
			ResumeURL:     v.ResumeURL,
			LinkedInURL:   v.LinkedInURL,
			GitHubURL:     v.GitHubURL,
		}
	case *Faculty:
		rec = facultyRecord{
			profileRecord: newProfileRecord(v.Profile, RoleFaculty),
			EmployeeID:    v.EmployeeID,
			Department:    v.Department,
			Designation:   v.Designation,
		}
	case *PlacementOfficer:
		rec = placementRecord{
			profileRecord: newProfileRecord(v.Profile, RolePlacementCell),
			EmployeeID:    v.EmployeeID,
			Position:      v.Position,
		}
	case *Recruiter:
		rec = recruiterRecord{
			profileRecord:  newProfileRecord(v.Profile, RoleRecruiter),
			CompanyName:    v.CompanyName,
			Position:       v.Position,
			CompanyWebsite: v.CompanyWebsite,
		}
	case *Unrecognized:
		rec = newProfileRecord(v.Profile, Role(v.RawRole))
	case nil:
		return nil, fmt.Errorf("encode identity: %w", ErrMalformedPersistedSession)
	default:
		return nil, fmt.Errorf("encode identity %T: %w", id, ErrUnrecognizedRole)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal identity: %w", err)
	}
	return data, nil
}

// DecodeIdentity parses a record produced by EncodeIdentity.
// Non-JSON input or a record without id, email or role yields
// ErrMalformedPersistedSession. A role outside the known variants decodes to
// *Unrecognized so the presenter can render its fallback.
func DecodeIdentity(data []byte) (Identity, error) {
	var head profileRecord
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPersistedSession, err)
	}
	if strings.TrimSpace(head.ID) == "" || strings.TrimSpace(head.Email) == "" || head.Role == "" {
		return nil, fmt.Errorf("%w: id, email and role are required", ErrMalformedPersistedSession)
	}

	switch head.Role {
	case RoleStudent:
		var rec studentRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedPersistedSession, err)
		}
		return &Student{
			Profile:     rec.profile(),
			StudentID:   rec.StudentID,
			Department:  rec.Department,
			Year:        rec.Year,
			CGPA:        rec.CGPA,
			Skills:      rec.Skills,
			Phone:       rec.Phone,
			ResumeURL:   rec.ResumeURL,
			LinkedInURL: rec.LinkedInURL,
			GitHubURL:   rec.GitHubURL,
		}, nil
	case RoleFaculty:
		var rec facultyRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedPersistedSession, err)
		}
		return &Faculty{
			Profile:     rec.profile(),
			EmployeeID:  rec.EmployeeID,
			Department:  rec.Department,
			Designation: rec.Designation,
		}, nil
	case RolePlacementCell:
		var rec placementRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedPersistedSession, err)
		}
		return &PlacementOfficer{
			Profile:    rec.profile(),
			EmployeeID: rec.EmployeeID,
			Position:   rec.Position,
		}, nil
	case RoleRecruiter:
		var rec recruiterRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedPersistedSession, err)
		}
		return &Recruiter{
			Profile:        rec.profile(),
			CompanyName:    rec.CompanyName,
			Position:       rec.Position,
			CompanyWebsite: rec.CompanyWebsite,
		}, nil
	default:
		return &Unrecognized{Profile: head.profile(), RawRole: string(head.Role)}, nil
	}
}
