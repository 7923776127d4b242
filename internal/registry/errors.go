package registry

import (
	"errors"
	"fmt"
	"os"
)

// NotManagedError is returned when an operation refuses to touch a
// resolver file that does not carry this registry's ownership marker.
// Such files were created by another tool (e.g., dnsmasq) or by hand.
type NotManagedError struct {
	// Domain whose resolver file is unmanaged.
	Domain string
}

func (e *NotManagedError) Error() string {
	return fmt.Sprintf("resolver file for %q is not managed by this registry", e.Domain)
}

// IsNotManaged reports whether err is a NotManagedError.
func IsNotManaged(err error) bool {
	var nm *NotManagedError
	return errors.As(err, &nm)
}

// IsPermissionDenied reports whether err is a permission failure.
// Writing to /etc/resolver typically requires root, so callers use this
// to suggest re-running under sudo.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, os.ErrPermission)
}
