package model

// ResourceKind tags an Ownership descriptor so access checks can switch on
// the resource kind explicitly instead of probing for field presence.
type ResourceKind string

const (
	ResourceJob         ResourceKind = "job"
	ResourceApplication ResourceKind = "application"
)

// Ownership declares which ownership fields a resource kind exposes. A zero
// field means the resource has no owner of that flavor.
type Ownership struct {
	Kind        ResourceKind
	EmployerID  string // owning employer (jobs; the parent job's employer for applications)
	ApplicantID string // owning applicant (applications only)
}

// OwnedBy reports whether the user may act on the resource: an employer must
// own it through EmployerID, an applicant through ApplicantID. The employer
// check runs first so an employer who somehow matches both fields is treated
// as the resource's employer.
func (o Ownership) OwnedBy(u *User) bool {
	switch o.Kind {
	case ResourceJob:
		return u.IsEmployer() && o.EmployerID == u.ID
	case ResourceApplication:
		if u.IsEmployer() && o.EmployerID == u.ID {
			return true
		}
		return o.ApplicantID == u.ID
	}
	return false
}
