package postgresadapter

import (
	"context"

	"github.com/google/uuid"
)

// UUIDGenerator creates opaque UUIDv4 identifiers for questions and options.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
