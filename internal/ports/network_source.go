package ports

import (
	"context"
	"flight-plan-service/internal/domain"
)

// Contract for obtaining the connection network a search runs over.
type NetworkSource interface {
	// Return a fully constructed (symmetrized) network.
	LoadNetwork(ctx context.Context) (*domain.Network, error)
}
