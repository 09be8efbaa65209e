// Package domain defines the types and interfaces for the geocode service
package domain

// ResolveInput is a batch of canonical addresses to resolve
type ResolveInput struct {
	Addresses []string `json:"addresses" validate:"required,min=1,max=5000,dive,min=1,max=500"`
}

// ResolvedAddress pairs an address with its WGS84 coordinates
type ResolvedAddress struct {
	Address   string `json:"address"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// RunReport is the outcome of one resolution run: coordinates for the
// addresses a backend could place, the rest listed unresolved so the
// caller can requisition better address data
type RunReport struct {
	Resolved   []ResolvedAddress `json:"resolved"`
	Unresolved []string          `json:"unresolved"`
}
