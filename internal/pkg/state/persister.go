package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/pkg/metrics"
)

// SchemaVersion is written into every persisted envelope. Payloads carrying
// any other version are ignored on restore.
const SchemaVersion = 1

type envelope struct {
	Version int             `json:"version"`
	State   json.RawMessage `json:"state"`
}

// Options configures a Persister.
type Options struct {
	Logger  logrus.FieldLogger
	Metrics *metrics.Metrics
}

// Persister serializes a container's whole state under one key after every
// mutation and restores it once at construction.
type Persister[T any] struct {
	storage Storage
	key     string
	logger  logrus.FieldLogger
	metrics *metrics.Metrics
}

// NewPersister creates a persister writing to key in storage
func NewPersister[T any](storage Storage, key string, opts Options) *Persister[T] {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Persister[T]{
		storage: storage,
		key:     key,
		logger:  logger.WithField("store", key),
		metrics: opts.Metrics,
	}
}

// Key returns the storage key of the persisted blob
func (p *Persister[T]) Key() string {
	return p.key
}

// Restore reads the persisted state. It reports false, with the zero value,
// when nothing usable is stored; a bad payload never fails the caller.
func (p *Persister[T]) Restore(ctx context.Context) (T, bool) {
	var zero T

	data, err := p.storage.Load(ctx, p.key)
	if errors.Is(err, ErrNotFound) {
		p.metrics.ObserveRehydration(p.key, metrics.RehydrateEmpty)
		return zero, false
	}
	if err != nil {
		p.logger.WithError(err).Warn("Failed to load persisted state, starting from defaults")
		p.metrics.ObserveRehydration(p.key, metrics.RehydrateInvalid)
		return zero, false
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		p.logger.WithError(err).Warn("Persisted state is not a valid envelope, starting from defaults")
		p.metrics.ObserveRehydration(p.key, metrics.RehydrateInvalid)
		return zero, false
	}

	if env.Version != SchemaVersion {
		p.logger.WithField("version", env.Version).Warn("Unsupported persisted state version, starting from defaults")
		p.metrics.ObserveRehydration(p.key, metrics.RehydrateInvalid)
		return zero, false
	}

	var value T
	if err := json.Unmarshal(env.State, &value); err != nil {
		p.logger.WithError(err).Warn("Failed to decode persisted state, starting from defaults")
		p.metrics.ObserveRehydration(p.key, metrics.RehydrateInvalid)
		return zero, false
	}

	p.metrics.ObserveRehydration(p.key, metrics.RehydrateRestored)
	return value, true
}

// Persist writes value. Failures are logged as warnings and counted; the
// caller's in-memory state stays authoritative.
func (p *Persister[T]) Persist(ctx context.Context, value T) error {
	state, err := json.Marshal(value)
	if err != nil {
		return p.fail(fmt.Errorf("failed to encode state: %w", err))
	}

	data, err := json.Marshal(envelope{Version: SchemaVersion, State: state})
	if err != nil {
		return p.fail(fmt.Errorf("failed to encode envelope: %w", err))
	}

	if err := p.storage.Save(ctx, p.key, data); err != nil {
		return p.fail(fmt.Errorf("failed to save state: %w", err))
	}

	return nil
}

func (p *Persister[T]) fail(err error) error {
	p.logger.WithError(err).Warn("Failed to persist state, keeping in-memory state")
	p.metrics.ObservePersistFailure(p.key)
	return err
}
