package repository

import (
	"listTracker/internal/access"
	"listTracker/internal/models"
)

// RequireRole enforces an access decision for an operation under a list the
// actor's role has already been resolved for. No role row at all maps to
// ErrNotFound so outsiders cannot distinguish "hidden" from "missing"; an
// insufficient role maps to ErrForbidden, since anyone holding a role can
// already see the resource.
func RequireRole(actor string, role models.Role, action access.Action) error {
	if role == models.RoleNone {
		return ErrNotFound
	}
	if d := access.Authorize(actor, role, action); !d.Allowed {
		return ErrForbidden
	}
	return nil
}

// RequireAssignee enforces the status-only update path. The assignee may act
// even without a role on the list; everyone else falls back to the usual
// visibility rule.
func RequireAssignee(actor, assignedTo string, role models.Role) error {
	if d := access.AuthorizeStatusUpdate(actor, assignedTo); d.Allowed {
		return nil
	}
	if role == models.RoleNone {
		return ErrNotFound
	}
	return ErrForbidden
}

// Window validates pagination parameters against the total row count and
// returns the slice offset. Asking for a page past the last one is an error
// when rows exist, not an empty page.
func Window(page, pageSize, totalCount int) (offset int, err error) {
	if page < 1 || pageSize < 1 {
		return 0, ErrInvalidPage
	}
	if totalCount > 0 {
		totalPages := (totalCount + pageSize - 1) / pageSize
		if page > totalPages {
			return 0, ErrPageOutOfRange
		}
	}
	return (page - 1) * pageSize, nil
}
