package postgresadapter

import (
	"context"

	"github.com/google/uuid"
)

// UUIDGenerator creates opaque UUIDv4 identifiers for votes and ballots.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
