package geocode

import "context"

// Run memoizes lookups over the life of one normalization batch so a batch
// with many rows at the same cell address hits the backends once per
// distinct address. Not safe for concurrent use; a batch runs one Run
type Run struct {
	c    *Client
	hits map[string]Point
	miss map[string]bool

	// Unresolved holds each distinct address neither backend could place,
	// in first-seen order, for the end-of-run report
	Unresolved []string
}

// NewRun starts a fresh memo over the client
func (c *Client) NewRun() *Run {
	return &Run{
		c:    c,
		hits: make(map[string]Point),
		miss: make(map[string]bool),
	}
}

// Locate resolves one address through the memo. Transport failures are
// logged and counted as unresolved rather than aborting the batch; rows
// keep their sentinel and the run carries on
func (r *Run) Locate(ctx context.Context, address string) (Point, bool) {
	if p, ok := r.hits[address]; ok {
		return p, true
	}
	if r.miss[address] {
		return Point{}, false
	}

	p, ok, err := r.c.Resolve(ctx, address)
	if err != nil {
		r.c.log.Warn().Err(err).Str("address", address).Msg("geocode lookup failed")
		ok = false
	}
	if !ok {
		r.miss[address] = true
		r.Unresolved = append(r.Unresolved, address)
		return Point{}, false
	}
	r.hits[address] = p
	return p, true
}
