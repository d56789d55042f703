package service

import (
	"fmt"

	"recruitconnect/internal/common"
	"recruitconnect/internal/domain/model"
)

// requireOwner enforces the ownership rules a resource declares through its
// Ownership descriptor. Callers must have resolved the resource first, so a
// missing row surfaces as NotFound before any ownership decision is made.
func requireOwner(user *model.User, o model.Ownership) error {
	if !o.OwnedBy(user) {
		return fmt.Errorf("you do not have permission to access or modify this resource: %w", common.ErrForbidden)
	}
	return nil
}
