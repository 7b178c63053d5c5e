package content

import (
	"context"
	"encoding/json"
)

// Tier names used in logs and metrics.
const (
	TierRemote   = "remote"
	TierSnapshot = "snapshot"
	TierDefault  = "default"
)

// Provider is one tier of the content fallback chain. TryResolve returns the
// raw document for a key, ok=false on a miss, or an error on a failed read.
// Both misses and errors make the resolver fall through to the next tier.
type Provider interface {
	// Name identifies the tier in logs and metrics.
	Name() string
	// TryResolve attempts to fetch the document for key.
	TryResolve(ctx context.Context, key Key) (json.RawMessage, bool, error)
}

// DocumentGetter reads a raw content document from the remote config store.
// It is satisfied by configstore.Store.
type DocumentGetter interface {
	GetDocument(ctx context.Context, key string) ([]byte, error)
	IsNotFound(err error) bool
}

// RemoteProvider resolves documents from the remote config store.
// A nil getter models an unconfigured store: every lookup is a silent miss.
type RemoteProvider struct {
	getter DocumentGetter
}

// NewRemoteProvider creates the tier-1 provider. getter may be nil when no
// store connection is configured.
func NewRemoteProvider(getter DocumentGetter) *RemoteProvider {
	return &RemoteProvider{getter: getter}
}

// Name identifies the remote tier.
func (p *RemoteProvider) Name() string { return TierRemote }

// TryResolve fetches the document from the remote store.
func (p *RemoteProvider) TryResolve(ctx context.Context, key Key) (json.RawMessage, bool, error) {
	if p.getter == nil {
		return nil, false, nil
	}
	raw, err := p.getter.GetDocument(ctx, string(key))
	if err != nil {
		if p.getter.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if len(raw) == 0 {
		return nil, false, nil
	}
	return raw, true, nil
}

// DefaultsProvider resolves documents from the hardcoded defaults.
// It never misses and never fails; it must be the last tier in the chain.
type DefaultsProvider struct{}

// NewDefaultsProvider creates the final tier.
func NewDefaultsProvider() *DefaultsProvider { return &DefaultsProvider{} }

// Name identifies the defaults tier.
func (p *DefaultsProvider) Name() string { return TierDefault }

// TryResolve returns the marshaled default document for key.
func (p *DefaultsProvider) TryResolve(_ context.Context, key Key) (json.RawMessage, bool, error) {
	raw, err := json.Marshal(DefaultDocument(key))
	if err != nil {
		// Defaults are plain literals; marshaling them cannot fail at runtime.
		return nil, false, err
	}
	return raw, true, nil
}
