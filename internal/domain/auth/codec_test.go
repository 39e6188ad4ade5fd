package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeIdentity_Student(t *testing.T) {
	cgpa := 8.5
	in := &Student{
		Profile:    Profile{ID: "1", Email: "student@example.com", FirstName: "John", LastName: "Doe"},
		StudentID:  "CS2021001",
		Department: "Computer Science",
		Year:       3,
		CGPA:       &cgpa,
		Skills:     []string{"React", "Go"},
		Phone:      "+91-9876543210",
	}

	data, err := EncodeIdentity(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"role":"student"`)
	assert.Contains(t, string(data), `"studentId":"CS2021001"`)

	out, err := DecodeIdentity(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncodeIdentity_RecruiterHasNoStudentFields(t *testing.T) {
	in := &Recruiter{
		Profile:     Profile{ID: "4", Email: "recruiter@example.com", FirstName: "Mike", LastName: "Wilson"},
		CompanyName: "TechCorp Solutions",
		Position:    "HR Manager",
	}

	data, err := EncodeIdentity(in)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "cgpa")
	assert.NotContains(t, string(data), "studentId")
	assert.Contains(t, string(data), `"companyName":"TechCorp Solutions"`)
}

func TestDecodeIdentity_IgnoresForeignVariantFields(t *testing.T) {
	raw := `{"id":"4","email":"recruiter@example.com","role":"recruiter","companyName":"TechCorp","cgpa":9.1}`

	out, err := DecodeIdentity([]byte(raw))
	require.NoError(t, err)

	rec, ok := out.(*Recruiter)
	require.True(t, ok)
	assert.Equal(t, "TechCorp", rec.CompanyName)
}

func TestDecodeIdentity_FlatRecord(t *testing.T) {
	raw := `{"id":"3","email":"placement@example.com","firstName":"Sarah","lastName":"Johnson",` +
		`"role":"placement_cell","employeeId":"PC001","position":"Placement Officer"}`

	out, err := DecodeIdentity([]byte(raw))
	require.NoError(t, err)

	officer, ok := out.(*PlacementOfficer)
	require.True(t, ok)
	assert.Equal(t, RolePlacementCell, officer.Role())
	assert.Equal(t, "PC001", officer.EmployeeID)
	assert.Equal(t, "Sarah Johnson", DisplayName(officer))
}

func TestDecodeIdentity_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":      `{{{`,
		"empty":         ``,
		"array":         `[1,2]`,
		"missing id":    `{"email":"a@example.com","role":"student"}`,
		"missing email": `{"id":"1","role":"student"}`,
		"missing role":  `{"id":"1","email":"a@example.com"}`,
		"wrong type":    `{"id":"1","email":"a@example.com","role":"student","year":"third"}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := DecodeIdentity([]byte(raw))
			require.ErrorIs(t, err, ErrMalformedPersistedSession)
			assert.Nil(t, out)
		})
	}
}

func TestDecodeIdentity_UnknownRoleBecomesUnrecognized(t *testing.T) {
	raw := `{"id":"9","email":"alumni@example.com","firstName":"Old","role":"alumni"}`

	out, err := DecodeIdentity([]byte(raw))
	require.NoError(t, err)

	u, ok := out.(*Unrecognized)
	require.True(t, ok)
	assert.Equal(t, Role("alumni"), u.Role())
	assert.False(t, u.Role().IsKnown())

	data, err := EncodeIdentity(u)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"role":"alumni"`)
}

func TestEncodeIdentity_Nil(t *testing.T) {
	_, err := EncodeIdentity(nil)
	require.ErrorIs(t, err, ErrMalformedPersistedSession)
}
