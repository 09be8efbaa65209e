// Package module wires ingest into the API using modkit
package module

import (
	"net/http"

	modkit "fadet/internal/modkit"
	"fadet/internal/modkit/httpkit"
	str "fadet/internal/platform/strings"
	"fadet/internal/services/ingest/domain"
	ingesthttp "fadet/internal/services/ingest/http"
	ingestrepo "fadet/internal/services/ingest/repo"
	ingestsvc "fadet/internal/services/ingest/service"
)

// Ports exposed by the ingest module
type Ports struct {
	Uploader domain.UploaderPort
}

// Module bundles the service, its routes and its exported ports
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc ingestsvc.Service
}

// New constructs an ingest module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("ingest"), modkit.WithPrefix("/ingest")}, opts...)...)

	svc := ingestsvc.New(deps.PG, ingestrepo.NewPG(), deps.CH)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Uploader: svc}
	if b.Ports != nil {
		m.ports = b.Ports
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		ingesthttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes under its prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
