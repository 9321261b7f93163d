package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"listTracker/internal/access"
	"listTracker/internal/models"
)

// TestAuthorize_RoleMatrix checks every action against every role.
func TestAuthorize_RoleMatrix(t *testing.T) {
	allRoles := []models.Role{models.RoleNone, models.RoleViewer, models.RoleEditor, models.RoleOwner}

	tests := []struct {
		action  access.Action
		minRole models.Role
	}{
		{access.ActionListCreate, models.RoleNone},
		{access.ActionListRead, models.RoleViewer},
		{access.ActionListUpdate, models.RoleOwner},
		{access.ActionListDelete, models.RoleOwner},
		{access.ActionShareRead, models.RoleViewer},
		{access.ActionShareManage, models.RoleOwner},
		{access.ActionTaskCreate, models.RoleOwner},
		{access.ActionTaskRead, models.RoleViewer},
		{access.ActionTaskUpdate, models.RoleOwner},
		{access.ActionTaskDelete, models.RoleOwner},
		{access.ActionTagAttach, models.RoleEditor},
		{access.ActionTagDetach, models.RoleEditor},
		{access.ActionCommentAdd, models.RoleEditor},
		{access.ActionCommentEdit, models.RoleOwner},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			for _, role := range allRoles {
				decision := access.Authorize("alice", role, tt.action)
				expected := role.AtLeast(tt.minRole)
				assert.Equal(t, expected, decision.Allowed,
					"role %q on action %q", role, tt.action)
				if !decision.Allowed {
					assert.NotEmpty(t, decision.Reason)
				}
			}
		})
	}
}

// TestAuthorize_EmptyActor verifies that an empty identity is denied
// everything, even actions open to RoleNone.
func TestAuthorize_EmptyActor(t *testing.T) {
	decision := access.Authorize("", models.RoleOwner, access.ActionListRead)
	assert.False(t, decision.Allowed)

	decision = access.Authorize("", models.RoleNone, access.ActionListCreate)
	assert.False(t, decision.Allowed)
}

func TestAuthorize_UnknownAction(t *testing.T) {
	decision := access.Authorize("alice", models.RoleOwner, access.Action("task:fly"))
	assert.False(t, decision.Allowed)
}

// TestAuthorizeStatusUpdate covers the assignee-only transition path.
func TestAuthorizeStatusUpdate(t *testing.T) {
	tests := []struct {
		name       string
		actor      string
		assignedTo string
		allowed    bool
	}{
		{"assignee may update", "bob", "bob", true},
		{"non-assignee denied", "alice", "bob", false},
		{"empty actor denied", "", "", false},
		{"owner of list but not assignee denied", "owner", "bob", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := access.AuthorizeStatusUpdate(tt.actor, tt.assignedTo)
			assert.Equal(t, tt.allowed, decision.Allowed)
		})
	}
}

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, models.RoleOwner.AtLeast(models.RoleViewer))
	assert.True(t, models.RoleEditor.AtLeast(models.RoleEditor))
	assert.False(t, models.RoleViewer.AtLeast(models.RoleEditor))
	assert.False(t, models.RoleNone.AtLeast(models.RoleViewer))
	assert.True(t, models.RoleNone.AtLeast(models.RoleNone))
}
