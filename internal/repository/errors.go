package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both a genuinely missing resource and a resource
	// the actor holds no role on: existence is not revealed to outsiders.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden means the actor can see the resource but lacks the role
	// the action requires.
	ErrForbidden = errors.New("operation not permitted")

	ErrConflict    = errors.New("conflicting state")
	ErrInvalidPage = errors.New("invalid pagination parameters")
)

var (
	ErrDuplicateTag   = fmt.Errorf("%w: task already carries a tag with that label", ErrConflict)
	ErrDuplicateShare = fmt.Errorf("%w: user already has a role on the list", ErrConflict)
	ErrLastOwner      = fmt.Errorf("%w: a list must keep at least one owner", ErrConflict)
	ErrPageOutOfRange = fmt.Errorf("%w: page is beyond the last page", ErrInvalidPage)
)
