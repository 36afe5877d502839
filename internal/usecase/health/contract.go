package health

import (
	"context"

	"github.com/kailas-cloud/fedsearch/internal/domain/entity"
)

// StorePinger checks record store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// TypeLister reports the searchable entity types.
type TypeLister interface {
	Types() []entity.Type
}
