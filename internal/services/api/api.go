// Package api provides the HTTP API for the application
package api

import (
	"fadet/internal/platform/config"
	"fadet/internal/platform/logger"
	phttp "fadet/internal/platform/net/http"
	"fadet/internal/platform/store"

	"fadet/internal/modkit"
	"fadet/internal/modkit/httpkit"
	"fadet/internal/modkit/module"

	catalogmod "fadet/internal/services/catalog/module"
	geocodemod "fadet/internal/services/geocode/module"
	ingestmod "fadet/internal/services/ingest/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Log: *opt.Logger,
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	mods := []module.Module{
		ingestmod.New(deps),
		catalogmod.New(deps),
		geocodemod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountUnder(r, "/api/v1", httpkit.CommonStack(opt.Config.Prefix("CORE_API_")), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
