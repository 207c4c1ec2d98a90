package network

import (
	"bytes"
	"context"
	"encoding/json"
	"flight-plan-service/internal/domain"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// File layout shared by the TOML and JSON formats.
type networkFile struct {
	Airports []airportRecord `toml:"airports" json:"airports"`
	Arcs     []arcRecord     `toml:"arcs" json:"arcs"`
}

type airportRecord struct {
	Code string `toml:"code" json:"code"`
	Name string `toml:"name" json:"name"`
}

// Duration uses Go duration syntax ("60m", "1h15m").
type arcRecord struct {
	From       string `toml:"from" json:"from"`
	To         string `toml:"to" json:"to"`
	DistanceKm int    `toml:"distance_km" json:"distance_km"`
	Duration   string `toml:"duration" json:"duration"`
}

// FileSource reads a network definition from a .toml or .json file.
// Arcs listed in one direction only are mirrored on load.
type FileSource struct {
	Path string
}

func (f FileSource) LoadNetwork(ctx context.Context) (*domain.Network, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("load network: read %q: %w", f.Path, err)
	}

	var file networkFile
	switch ext := strings.ToLower(filepath.Ext(f.Path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("load network: parse toml %q: %w", f.Path, err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("load network: parse json %q: %w", f.Path, err)
		}
	default:
		return nil, fmt.Errorf("load network: unsupported file extension %q", ext)
	}

	n, err := file.build()
	if err != nil {
		return nil, fmt.Errorf("load network: %q: %w", f.Path, err)
	}
	return n, nil
}

func (f networkFile) build() (*domain.Network, error) {
	airports := make([]domain.Airport, 0, len(f.Airports))
	for _, a := range f.Airports {
		airports = append(airports, domain.Airport{Code: strings.TrimSpace(a.Code), Name: a.Name})
	}

	arcs := make([]domain.ArcSpec, 0, len(f.Arcs))
	for i, a := range f.Arcs {
		d, err := time.ParseDuration(strings.TrimSpace(a.Duration))
		if err != nil {
			return nil, &domain.ConfigurationError{
				Field:  "arcs",
				Reason: fmt.Sprintf("arc #%d %s->%s: invalid duration %q", i+1, a.From, a.To, a.Duration),
			}
		}
		arcs = append(arcs, domain.ArcSpec{
			From: strings.TrimSpace(a.From),
			To:   strings.TrimSpace(a.To),
			Arc:  domain.Arc{DistanceKm: a.DistanceKm, Duration: d},
		})
	}

	n, err := domain.NewNetwork(airports, arcs)
	if err != nil {
		return nil, err
	}
	return n.Symmetrize(), nil
}
