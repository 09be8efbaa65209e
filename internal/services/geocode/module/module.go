// Package module wires geocode into the API using modkit
package module

import (
	"net/http"

	adapter "fadet/internal/adapters/geocode"
	modkit "fadet/internal/modkit"
	"fadet/internal/modkit/httpkit"
	str "fadet/internal/platform/strings"
	"fadet/internal/services/geocode/domain"
	geocodehttp "fadet/internal/services/geocode/http"
	geocodesvc "fadet/internal/services/geocode/service"
)

// Ports exposed by the geocode module
type Ports struct {
	Resolver domain.ResolverPort
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

	svc geocodesvc.Service
}

// New constructs a geocode module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("geocode"), modkit.WithPrefix("/geocode")}, opts...)...)

	o := FromConfig(deps.Cfg)
	client := adapter.NewClient(adapter.Options{
		BaseURL:       o.BaseURL,
		GoogleBaseURL: o.GoogleBaseURL,
		GoogleAPIKey:  o.GoogleAPIKey,
		MinInterval:   o.MinInterval,
	})
	svc := geocodesvc.New(client)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Resolver: svc}
	if b.Ports != nil {
		m.ports = b.Ports
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		geocodehttp.Register(r, m.svc)
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
