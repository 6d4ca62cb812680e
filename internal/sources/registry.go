// Package sources routes requested job boards to the component that serves
// them: library-backed boards go to the batch engine in one call, directly
// integrated boards each get their own adapter.
package sources

import (
	"context"

	"jobgate/internal/config"
	"jobgate/internal/sources/adapters"
	"jobgate/internal/upstream"
	"jobgate/pkg/models"
)

// Adapter is one directly-integrated job board. Fetch returns records
// already normalized to the canonical schema; a nil slice with a nil error
// means the board legitimately has nothing for this request.
type Adapter interface {
	Source() models.SourceID
	Fetch(ctx context.Context, req *models.SearchRequest) ([]models.JobRecord, error)
}

// Registry holds the direct adapters keyed by source.
type Registry struct {
	direct map[models.SourceID]Adapter
}

// NewRegistry builds the registry with the production adapters, all sharing
// one rate-limited upstream client.
func NewRegistry(cfg *config.Config) *Registry {
	client := upstream.NewClient(cfg)
	return NewRegistryWithAdapters(
		adapters.NewRemoteOK(client, cfg.Sources.RemoteOK.BaseURL),
		adapters.NewArbeitnow(client, cfg.Sources.Arbeitnow.BaseURL),
		adapters.NewRemotive(client, cfg.Sources.Remotive.BaseURL),
		adapters.NewJobicy(client, cfg.Sources.Jobicy.BaseURL),
	)
}

// NewRegistryWithAdapters builds a registry from explicit adapters.
func NewRegistryWithAdapters(directAdapters ...Adapter) *Registry {
	direct := make(map[models.SourceID]Adapter, len(directAdapters))
	for _, a := range directAdapters {
		direct[a.Source()] = a
	}
	return &Registry{direct: direct}
}

// Classify splits the requested sources into the library-backed subset
// (order preserved) and the direct adapters that will serve the rest
// (request order preserved). Requested direct sources without a registered
// adapter are dropped.
func (r *Registry) Classify(requested []models.SourceID) ([]models.SourceID, []Adapter) {
	var library []models.SourceID
	var direct []Adapter

	for _, id := range requested {
		switch {
		case models.IsLibrarySource(id):
			library = append(library, id)
		case models.IsDirectSource(id):
			if adapter, ok := r.direct[id]; ok {
				direct = append(direct, adapter)
			}
		}
	}

	return library, direct
}
