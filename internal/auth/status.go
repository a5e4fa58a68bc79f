package auth

import (
	"context"
)

// AdminStatus is the viewer's authorization state as seen by the user management page.
// It is passed explicitly to whatever needs it.
type AdminStatus struct {
	IsAdmin   bool `json:"isAdmin"`
	IsLoading bool `json:"isLoading"`
}

// AdminStatusProvider resolves the admin status of a viewer.
type AdminStatusProvider interface {
	AdminStatus(ctx context.Context, viewerID string) (AdminStatus, error)
}

// Decision is the outcome of the authorization gate.
type Decision int

const (
	// DecisionDefer means the status is still loading: render nothing meaningful yet.
	DecisionDefer Decision = iota
	// DecisionDeny means the viewer is not an admin: notify, redirect, render nothing.
	DecisionDeny
	// DecisionAllow means the viewer is an admin.
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionDefer:
		return "defer"
	case DecisionDeny:
		return "deny"
	case DecisionAllow:
		return "allow"
	}
	return "unknown"
}

// Gate decides what the page does for a given admin status.
func Gate(status AdminStatus) Decision {
	if status.IsLoading {
		return DecisionDefer
	}
	if !status.IsAdmin {
		return DecisionDeny
	}
	return DecisionAllow
}

// ResolveStatus asks the provider for the viewer's status. Provider failures fail closed.
func ResolveStatus(ctx context.Context, p AdminStatusProvider, viewerID string) AdminStatus {
	status, err := p.AdminStatus(ctx, viewerID)
	if err != nil {
		return AdminStatus{}
	}
	return status
}
