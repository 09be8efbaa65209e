// Package service contains the geocode workflows
package service

import (
	"context"

	"fadet/internal/adapters/geocode"
	"fadet/internal/core/canon"
	"fadet/internal/services/geocode/domain"
)

// Service defines the service contract for geocode
type Service interface{ domain.ResolverPort }

// Resolver is the adapter surface the service drives, seam for tests
type Resolver interface {
	NewRun() *geocode.Run
}

// Svc implements the Service interface
type Svc struct {
	client Resolver
}

// New creates a new geocode service
func New(client Resolver) *Svc {
	if client == nil {
		panic("geocode.Service requires a non nil Resolver")
	}
	return &Svc{client: client}
}

// Resolve runs one batch through the backends. Sentinel addresses are
// never sent out: an address the normalizers could not build goes straight
// to the unresolved list. Duplicate addresses resolve once
func (s *Svc) Resolve(ctx context.Context, in domain.ResolveInput) (domain.RunReport, error) {
	run := s.client.NewRun()

	var out domain.RunReport
	seen := make(map[string]bool, len(in.Addresses))
	for _, addr := range in.Addresses {
		if seen[addr] {
			continue
		}
		seen[addr] = true

		if addr == canon.Indetermine {
			out.Unresolved = append(out.Unresolved, addr)
			continue
		}

		p, ok := run.Locate(ctx, addr)
		if !ok {
			continue
		}
		out.Resolved = append(out.Resolved, domain.ResolvedAddress{
			Address:   addr,
			Latitude:  p.Lat,
			Longitude: p.Lon,
		})
	}
	out.Unresolved = append(out.Unresolved, run.Unresolved...)
	return out, nil
}
