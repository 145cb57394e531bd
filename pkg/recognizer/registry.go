package recognizer

import (
	"sort"
	"sync"
)

var (
	localMu      sync.RWMutex
	localEngines = map[string]func() Recognizer{}
)

// RegisterLocal makes a local engine available by name. Engines built on
// cgo live in their own package and register from init.
func RegisterLocal(name string, newEngine func() Recognizer) {
	localMu.Lock()
	defer localMu.Unlock()
	if newEngine == nil {
		panic("recognizer: RegisterLocal engine factory is nil")
	}
	if _, dup := localEngines[name]; dup {
		panic("recognizer: RegisterLocal called twice for " + name)
	}
	localEngines[name] = newEngine
}

// NewLocal builds the registered local engine called name.
func NewLocal(name string) (Recognizer, bool) {
	localMu.RLock()
	defer localMu.RUnlock()
	newEngine, ok := localEngines[name]
	if !ok {
		return nil, false
	}
	return newEngine(), true
}

// LocalEngines lists the registered local engine names, sorted.
func LocalEngines() []string {
	localMu.RLock()
	defer localMu.RUnlock()
	names := make([]string, 0, len(localEngines))
	for name := range localEngines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
