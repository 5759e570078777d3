package assets

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAuditContext rejects mutations that arrive without an actor.
	ErrMissingAuditContext = errors.New("actor and action are required for audited mutations")

	// ErrNoChanges rejects an update whose effective change set is empty.
	ErrNoChanges = errors.New("no changes were made to the asset")

	// ErrNotFound means the asset does not exist or is already soft-deleted.
	ErrNotFound = errors.New("asset not found")
)

// ForbiddenTransitionError means the actor's role may not change the named
// field. The whole mutation is rejected, not just the offending field.
type ForbiddenTransitionError struct {
	Field string
	Role  string
}

func (e *ForbiddenTransitionError) Error() string {
	return fmt.Sprintf("role %q is not allowed to change %s", e.Role, e.Field)
}
