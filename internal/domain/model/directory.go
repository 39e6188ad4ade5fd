//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// Directory carries campus-wide head counts.
type Directory struct {
	Students   int
	Recruiters int
}
