// README: Google Maps travel estimates for quote requests without metrics.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"zonefare/internal/types"
)

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

type TravelEstimate struct {
	DistanceKm  float64
	DurationMin float64
}

// EstimateTrip returns driving distance and duration between two coordinates.
// Used only when the caller supplies no measured trip metrics; the engine
// itself never performs I/O.
func (s *RouteService) EstimateTrip(ctx context.Context, origin, destination types.Point) (TravelEstimate, error) {
	r := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", origin.Lat, origin.Lng),
		Destination: fmt.Sprintf("%f,%f", destination.Lat, destination.Lng),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return TravelEstimate{}, fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return TravelEstimate{}, fmt.Errorf("no route found")
	}

	leg := routes[0].Legs[0]
	return TravelEstimate{
		DistanceKm:  float64(leg.Distance.Meters) / 1000.0,
		DurationMin: leg.Duration.Minutes(),
	}, nil
}
