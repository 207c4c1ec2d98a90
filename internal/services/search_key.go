package services

import (
	"flight-plan-service/internal/domain"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// SearchKey identifies a search by everything that influences its result:
// the network arcs, the request fields, and whether plans are closed at the hub.
// Equal inputs give equal keys across processes.
func SearchKey(network *domain.Network, req SearchRequest, closeAtHub bool) string {
	d := xxhash.New()

	for _, s := range network.Arcs() {
		fmt.Fprintf(d, "%s>%s:%d:%d;", s.From, s.To, s.Arc.DistanceKm, int64(s.Arc.Duration))
	}
	fmt.Fprintf(d, "|hub=%s|start=%s|end=%s|tat=%d|scale=%s|close=%t",
		req.Hub,
		req.Start.UTC().Format(time.RFC3339Nano),
		req.End.UTC().Format(time.RFC3339Nano),
		int64(req.Turnaround),
		strconv.FormatFloat(req.scale(), 'g', -1, 64),
		closeAtHub,
	)

	return strconv.FormatUint(d.Sum64(), 16)
}
