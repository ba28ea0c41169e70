package fs

import (
	"github.com/aretw0/introspection"
)

// KVState exposes internal state for observability.
type KVState struct {
	Dir    string `json:"dir" yaml:"dir"`
	Writes int    `json:"writes" yaml:"writes"`
}

// State implements introspection.Introspectable.
func (k *KV) State() any {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return KVState{
		Dir:    k.Dir,
		Writes: k.writes,
	}
}

// ComponentType implements introspection.Component.
func (k *KV) ComponentType() string {
	return "fs-kv"
}

var _ introspection.Introspectable = (*KV)(nil)
var _ introspection.Component = (*KV)(nil)
