package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobOwnership(t *testing.T) {
	job := &Job{ID: "j1", EmployerID: "e1"}
	owner := &User{ID: "e1", Role: RoleEmployer}
	otherEmployer := &User{ID: "e2", Role: RoleEmployer}
	seeker := &User{ID: "e1", Role: RoleJobSeeker} // same id, wrong role

	assert.True(t, job.Ownership().OwnedBy(owner))
	assert.False(t, job.Ownership().OwnedBy(otherEmployer))
	assert.False(t, job.Ownership().OwnedBy(seeker), "a job has no applicant-style owner")
}

func TestApplicationOwnership(t *testing.T) {
	app := &Application{ID: "a1", ApplicantID: "s1", JobEmployerID: "e1"}
	applicant := &User{ID: "s1", Role: RoleJobSeeker}
	jobOwner := &User{ID: "e1", Role: RoleEmployer}
	otherSeeker := &User{ID: "s2", Role: RoleJobSeeker}
	otherEmployer := &User{ID: "e2", Role: RoleEmployer}

	assert.True(t, app.Ownership().OwnedBy(applicant))
	assert.True(t, app.Ownership().OwnedBy(jobOwner))
	assert.False(t, app.Ownership().OwnedBy(otherSeeker))
	assert.False(t, app.Ownership().OwnedBy(otherEmployer))
}

func TestApplicationStatus(t *testing.T) {
	assert.True(t, ValidApplicationStatus(StatusPending))
	assert.True(t, ValidApplicationStatus(StatusWithdrawn))
	assert.False(t, ValidApplicationStatus("archived"))

	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusAccepted.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusWithdrawn.IsTerminal())
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleEmployer))
	assert.True(t, ValidRole(RoleJobSeeker))
	assert.False(t, ValidRole("admin"))
}
