package module

import "sync"

// Registry of port sets keyed by module name. Filled once at bootstrap,
// read whenever one module (or a command binary) needs another's ports.
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores the port set published under a module name.
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs looks up the port set registered under name and asserts it to T.
// The second result is false when the name is unknown or the type differs.
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}

// Reset clears the registry between tests.
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
