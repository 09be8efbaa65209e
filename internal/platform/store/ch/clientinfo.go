package ch

import (
	"os"
	"runtime"
	"runtime/debug"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// clientInfo tags connections so system.query_log rows can be traced back
// to the process that issued them (role, build, go version, host)
func clientInfo(role string) clickhouse.ClientInfo {
	var info clickhouse.ClientInfo
	add := func(name, version string) {
		info.Products = append(info.Products, struct{ Name, Version string }{name, version})
	}

	add("fadet", buildRevision())
	if role != "" {
		add("role", role)
	}
	add("go", runtime.Version())
	if host, err := os.Hostname(); err == nil && host != "" {
		add("host", host)
	}
	return info
}

// buildRevision returns the short vcs commit baked into the binary, or
// "devel" for unstamped builds (go run, test binaries)
func buildRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "devel"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return "devel"
}
