package core

import (
	"context"
	"fmt"
)

// ensurePermission checks kind and, if it is not granted, requests it once.
func ensurePermission(ctx context.Context, perms Permissions, kind PermissionKind) error {
	granted, err := perms.Status(ctx, kind)
	if err != nil {
		return fmt.Errorf("query %s permission: %w", kind, err)
	}
	if granted {
		return nil
	}

	granted, err = perms.Request(ctx, kind)
	if err != nil {
		return fmt.Errorf("request %s permission: %w", kind, err)
	}
	if !granted {
		return &PermissionError{Kind: kind}
	}
	return nil
}
