package domain

import "context"

// ResolverPort resolves address batches to coordinates
type ResolverPort interface {
	Resolve(ctx context.Context, in ResolveInput) (RunReport, error)
}
