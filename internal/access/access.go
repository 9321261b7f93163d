// Package access holds the pure authorization decisions. Nothing here does
// I/O: callers resolve the actor's role on the relevant list first and pass
// it in, then enforce the returned decision atomically with their query.
package access

import (
	"listTracker/internal/models"
)

type Action string

const (
	ActionListCreate  Action = "list:create"
	ActionListRead    Action = "list:read"
	ActionListUpdate  Action = "list:update"
	ActionListDelete  Action = "list:delete"
	ActionShareRead   Action = "share:read"
	ActionShareManage Action = "share:manage"
	ActionTaskCreate  Action = "task:create"
	ActionTaskRead    Action = "task:read"
	ActionTaskUpdate  Action = "task:update"
	ActionTaskDelete  Action = "task:delete"
	ActionTagAttach   Action = "tag:attach"
	ActionTagDetach   Action = "tag:detach"
	ActionCommentAdd  Action = "comment:add"
	ActionCommentEdit Action = "comment:edit"
)

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// minRole is the weakest role that may perform each action. Task creation is
// deliberately Owner-only even though Editors may tag and comment; status-only
// task updates do not go through this table at all (see AuthorizeStatusUpdate).
var minRole = map[Action]models.Role{
	ActionListCreate:  models.RoleNone,
	ActionListRead:    models.RoleViewer,
	ActionListUpdate:  models.RoleOwner,
	ActionListDelete:  models.RoleOwner,
	ActionShareRead:   models.RoleViewer,
	ActionShareManage: models.RoleOwner,
	ActionTaskCreate:  models.RoleOwner,
	ActionTaskRead:    models.RoleViewer,
	ActionTaskUpdate:  models.RoleOwner,
	ActionTaskDelete:  models.RoleOwner,
	ActionTagAttach:   models.RoleEditor,
	ActionTagDetach:   models.RoleEditor,
	ActionCommentAdd:  models.RoleEditor,
	ActionCommentEdit: models.RoleOwner,
}

// Authorize decides whether actor, holding role on the target list, may
// perform action. An actor with no role row passes models.RoleNone. The empty
// actor identity is never authorized for anything.
func Authorize(actor string, role models.Role, action Action) Decision {
	if actor == "" {
		return deny("unauthenticated actor")
	}
	min, ok := minRole[action]
	if !ok {
		return deny("unknown action")
	}
	if !role.AtLeast(min) {
		return deny("requires at least " + string(min) + " role")
	}
	return allow()
}

// AuthorizeStatusUpdate is the narrow permission path for status-only task
// transitions: only the current assignee may change status, independent of
// any list role.
func AuthorizeStatusUpdate(actor, assignedTo string) Decision {
	if actor == "" {
		return deny("unauthenticated actor")
	}
	if actor != assignedTo {
		return deny("only the assignee may change task status")
	}
	return allow()
}
