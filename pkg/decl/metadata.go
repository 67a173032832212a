package decl

import (
	"reflect"

	cserrors "github.com/toyz/cskit/pkg/errors"
)

// Metadata is a bag of generator bookkeeping values attached to a node. Entries are
// keyed by name and Go type, so the same name may hold one value per type. Metadata
// is never emitted.
type Metadata struct {
	entries map[metaKey]any
}

type metaKey struct {
	name string
	typ  reflect.Type
}

// Len returns the number of stored entries
func (m Metadata) Len() int {
	return len(m.entries)
}

// Store returns a copy of m with value stored under key for type T.
func Store[T any](m Metadata, key string, value T) Metadata {
	entries := make(map[metaKey]any, len(m.entries)+1)
	for k, v := range m.entries {
		entries[k] = v
	}
	entries[metaKey{name: key, typ: reflect.TypeOf((*T)(nil)).Elem()}] = value
	return Metadata{entries: entries}
}

// Lookup returns the value stored under key for type T. A key that was never
// stored, or was stored with a different type, fails with errors.ErrMissingKey.
func Lookup[T any](m Metadata, key string) (T, error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if v, ok := m.entries[metaKey{name: key, typ: typ}]; ok {
		return v.(T), nil
	}
	var zero T
	return zero, cserrors.MissingKey(key, typ.String())
}

// metaCarrier is implemented by every node type.
type metaCarrier[N any] interface {
	Meta() Metadata
	replaceMeta(Metadata) N
}

// WithMeta returns a copy of node with value stored under key.
//
//	m = decl.WithMeta(m, "symbol", sym)
func WithMeta[T any, N metaCarrier[N]](node N, key string, value T) N {
	return node.replaceMeta(Store(node.Meta(), key, value))
}

// Meta reads a typed metadata value from node.
//
//	sym, err := decl.Meta[Symbol](m, "symbol")
func Meta[T any, N interface{ Meta() Metadata }](node N, key string) (T, error) {
	return Lookup[T](node.Meta(), key)
}
