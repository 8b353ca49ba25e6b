// Package state holds the plumbing shared by the storefront state containers:
// the key-value storage port, the versioned persistence adapter and the change
// notifier.
package state

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Storage when no value exists for a key.
var ErrNotFound = errors.New("state: key not found")

// Storage is the durable key-value port the persisted stores write to.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Namespace returns a Storage that scopes every key under prefix.
func Namespace(s Storage, prefix string) Storage {
	return &namespaced{inner: s, prefix: prefix}
}

type namespaced struct {
	inner  Storage
	prefix string
}

func (n *namespaced) key(k string) string {
	if n.prefix == "" {
		return k
	}
	return n.prefix + ":" + k
}

func (n *namespaced) Load(ctx context.Context, key string) ([]byte, error) {
	return n.inner.Load(ctx, n.key(key))
}

func (n *namespaced) Save(ctx context.Context, key string, data []byte) error {
	return n.inner.Save(ctx, n.key(key), data)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.key(key))
}
