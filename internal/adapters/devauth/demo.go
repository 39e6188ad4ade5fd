package devauth

import domainauth "github.com/target/cipms/internal/domain/auth"

// Demo account emails.
const (
	DemoStudentEmail   = "student@example.com"
	DemoFacultyEmail   = "faculty@example.com"
	DemoPlacementEmail = "placement@example.com"
	DemoRecruiterEmail = "recruiter@example.com"
)

// DemoIdentities returns fresh copies of the demo accounts.
func DemoIdentities() []domainauth.Identity {
	cgpa := 8.5
	return []domainauth.Identity{
		&domainauth.Student{
			Profile: domainauth.Profile{
				ID:        "1",
				Email:     DemoStudentEmail,
				FirstName: "John",
				LastName:  "Doe",
			},
			StudentID:  "CS2021001",
			Department: "Computer Science",
			Year:       3,
			CGPA:       &cgpa,
			Skills:     []string{"React", "JavaScript", "Python", "Java"},
			Phone:      "+91-9876543210",
		},
		&domainauth.Faculty{
			Profile: domainauth.Profile{
				ID:        "2",
				Email:     DemoFacultyEmail,
				FirstName: "Dr. Jane",
				LastName:  "Smith",
			},
			EmployeeID:  "FAC001",
			Department:  "Computer Science",
			Designation: "Professor",
		},
		&domainauth.PlacementOfficer{
			Profile: domainauth.Profile{
				ID:        "3",
				Email:     DemoPlacementEmail,
				FirstName: "Sarah",
				LastName:  "Johnson",
			},
			EmployeeID: "PC001",
			Position:   "Placement Officer",
		},
		&domainauth.Recruiter{
			Profile: domainauth.Profile{
				ID:        "4",
				Email:     DemoRecruiterEmail,
				FirstName: "Mike",
				LastName:  "Wilson",
			},
			CompanyName:    "TechCorp Solutions",
			Position:       "HR Manager",
			CompanyWebsite: "https://techcorp.com",
		},
	}
}
