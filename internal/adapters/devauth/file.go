package devauth

import (
	"fmt"
	"os"

	domainauth "github.com/target/cipms/internal/domain/auth"
	"gopkg.in/yaml.v3"
)

// CredentialsFile is the YAML layout accepted by LoadFile.
//
//	users:
//	  - id: "1"
//	    email: student@example.com
//	    role: student
//	    firstName: John
//	    lastName: Doe
//	    passwordHash: $argon2id$v=19$...
//	    studentId: CS2021001
type CredentialsFile struct {
	Users []UserRecord `yaml:"users"`
}

// UserRecord is one account. Only the fields of the account's role are read.
type UserRecord struct {
	ID           string `yaml:"id"`
	Email        string `yaml:"email"`
	Role         string `yaml:"role"`
	FirstName    string `yaml:"firstName"`
	LastName     string `yaml:"lastName"`
	Avatar       string `yaml:"avatar,omitempty"`
	PasswordHash string `yaml:"passwordHash,omitempty"`

	StudentID   string   `yaml:"studentId,omitempty"`
	Department  string   `yaml:"department,omitempty"`
	Year        int      `yaml:"year,omitempty"`
	CGPA        *float64 `yaml:"cgpa,omitempty"`
	Skills      []string `yaml:"skills,omitempty"`
	Phone       string   `yaml:"phone,omitempty"`
	ResumeURL   string   `yaml:"resumeUrl,omitempty"`
	LinkedInURL string   `yaml:"linkedinUrl,omitempty"`
	GitHubURL   string   `yaml:"githubUrl,omitempty"`

	EmployeeID     string `yaml:"employeeId,omitempty"`
	Designation    string `yaml:"designation,omitempty"`
	Position       string `yaml:"position,omitempty"`
	CompanyName    string `yaml:"companyName,omitempty"`
	CompanyWebsite string `yaml:"companyWebsite,omitempty"`
}

// Identity converts the record into its role variant.
func (u UserRecord) Identity() (domainauth.Identity, error) {
	if u.ID == "" || u.Email == "" {
		return nil, fmt.Errorf("user %q: id and email are required", u.Email)
	}
	profile := domainauth.Profile{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}

	role, ok := domainauth.ParseRole(u.Role)
	if !ok {
		return nil, fmt.Errorf("user %q: role %q: %w", u.Email, u.Role, domainauth.ErrUnrecognizedRole)
	}
	switch role {
	case domainauth.RoleStudent:
		return &domainauth.Student{
			Profile:     profile,
			StudentID:   u.StudentID,
			Department:  u.Department,
			Year:        u.Year,
			CGPA:        u.CGPA,
			Skills:      u.Skills,
			Phone:       u.Phone,
			ResumeURL:   u.ResumeURL,
			LinkedInURL: u.LinkedInURL,
			GitHubURL:   u.GitHubURL,
		}, nil
	case domainauth.RoleFaculty:
		return &domainauth.Faculty{
			Profile:     profile,
			EmployeeID:  u.EmployeeID,
			Department:  u.Department,
			Designation: u.Designation,
		}, nil
	case domainauth.RolePlacementCell:
		return &domainauth.PlacementOfficer{
			Profile:    profile,
			EmployeeID: u.EmployeeID,
			Position:   u.Position,
		}, nil
	case domainauth.RoleRecruiter:
		return &domainauth.Recruiter{
			Profile:        profile,
			CompanyName:    u.CompanyName,
			Position:       u.Position,
			CompanyWebsite: u.CompanyWebsite,
		}, nil
	default:
		return nil, fmt.Errorf("user %q: role %q: %w", u.Email, u.Role, domainauth.ErrUnrecognizedRole)
	}
}

// LoadFile reads a credentials YAML file.
func LoadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path from operator config
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Source from credentials YAML.
func Parse(data []byte) (*Source, error) {
	var file CredentialsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}
	if len(file.Users) == 0 {
		return nil, fmt.Errorf("parse credentials file: no users defined")
	}

	s, _ := NewSource()
	for _, u := range file.Users {
		id, err := u.Identity()
		if err != nil {
			return nil, err
		}
		if err := s.add(id, u.PasswordHash); err != nil {
			return nil, err
		}
	}
	return s, nil
}
