// Package viewmodel holds the data shapes passed to HTML templates.
package viewmodel

// User represents the authenticated user context exposed to templates.
type User struct {
	Name      string
	Email     string
	Role      string
	RoleLabel string
	Initials  string
	Avatar    string
}

// MenuLink is one rendered sidebar entry.
type MenuLink struct {
	Label  string
	Target string
	Icon   string
	Active bool
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CurrentPath     string
	IsAuthenticated bool
	User            *User
	Menu            []MenuLink
}

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}

// LayoutData implements LayoutProvider.
func (l *Layout) LayoutData() *Layout { return l }
