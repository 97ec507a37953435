package dto

import (
	"testing"

	"jobboard_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestUpdateApplicationRequest_ForRole(t *testing.T) {
	status := models.ApplicationStatusHired
	notes := "see you monday"
	email := "not-an-email"
	read := true
	req := &UpdateApplicationRequest{
		Email:            &email,
		Notes:            &notes,
		Status:           &status,
		NotificationRead: &read,
	}

	company := req.ForRole(models.UserRoleCompany)
	assert.Equal(t, &status, company.Status)
	assert.Equal(t, &notes, company.Notes)
	assert.Nil(t, company.Email)
	assert.Nil(t, company.NotificationRead)

	seeker := req.ForRole(models.UserRoleJobseeker)
	assert.Equal(t, &read, seeker.NotificationRead)
	assert.Nil(t, seeker.Status)
	assert.Nil(t, seeker.Email)

	admin := req.ForRole(models.UserRoleAdmin)
	assert.Equal(t, *req, *admin)
	assert.NotSame(t, req, admin)

	assert.Equal(t, UpdateApplicationRequest{}, *req.ForRole(models.UserRole("guest")))
}
