// Package module defines the contract service modules satisfy and a small
// registry for sharing their ports during bootstrap.
package module

import (
	phttp "fadet/internal/platform/net/http"
)

// Module is what a service package exports to the composition root.
// Kept as a sibling package so a module can also export its own Ports
// struct without an import cycle.
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
