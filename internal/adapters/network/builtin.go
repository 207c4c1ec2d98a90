package network

import (
	"context"
	"flight-plan-service/internal/domain"
	"flight-plan-service/internal/ports"
	"time"
)

// Builtin is the three-airport domestic network used when no file is configured.
func Builtin() *domain.Network {
	n, err := domain.NewNetwork(
		[]domain.Airport{
			{Code: "SAW", Name: "İstanbul Sabiha Gökçen"},
			{Code: "ESB", Name: "Ankara Esenboğa"},
			{Code: "AYT", Name: "Antalya"},
		},
		[]domain.ArcSpec{
			{From: "SAW", To: "ESB", Arc: domain.Arc{DistanceKm: 323, Duration: 60 * time.Minute}},
			{From: "SAW", To: "AYT", Arc: domain.Arc{DistanceKm: 652, Duration: 75 * time.Minute}},
			{From: "ESB", To: "AYT", Arc: domain.Arc{DistanceKm: 406, Duration: 65 * time.Minute}},
		},
	)
	if err != nil {
		panic("builtin network: " + err.Error())
	}
	return n.Symmetrize()
}

// BuiltinSource serves Builtin as a NetworkSource.
type BuiltinSource struct{}

func (BuiltinSource) LoadNetwork(ctx context.Context) (*domain.Network, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Builtin(), nil
}

// Source picks the file source when path is set and the builtin network otherwise.
func Source(path string) ports.NetworkSource {
	if path == "" {
		return BuiltinSource{}
	}
	return FileSource{Path: path}
}
