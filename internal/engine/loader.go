// README: Loader abstraction over the administrative data stores.
package engine

import (
	"context"

	"zonefare/internal/modules/fare"
	"zonefare/internal/modules/surge"
	"zonefare/internal/modules/tax"
	"zonefare/internal/modules/zone"
)

// Loader supplies the raw administrative records a snapshot is built from.
type Loader interface {
	LoadZones(ctx context.Context) ([]zone.Zone, error)
	LoadSchedules(ctx context.Context) ([]fare.Schedule, error)
	LoadVehicleGroups(ctx context.Context) ([]fare.VehicleGroup, error)
	LoadFarePlans(ctx context.Context) ([]fare.FarePlan, error)
	LoadSurgePrices(ctx context.Context) ([]surge.Price, error)
	LoadTaxes(ctx context.Context) ([]tax.Tax, error)
}

// StoreLoader implements Loader over the PostgreSQL stores.
type StoreLoader struct {
	Zones *zone.Store
	Fares *fare.Store
	Surge *surge.Store
	Taxes *tax.Store
}

func (l StoreLoader) LoadZones(ctx context.Context) ([]zone.Zone, error) {
	return l.Zones.ListActive(ctx)
}

func (l StoreLoader) LoadSchedules(ctx context.Context) ([]fare.Schedule, error) {
	return l.Fares.ListActiveSchedules(ctx)
}

func (l StoreLoader) LoadVehicleGroups(ctx context.Context) ([]fare.VehicleGroup, error) {
	return l.Fares.ListActiveVehicleGroups(ctx)
}

func (l StoreLoader) LoadFarePlans(ctx context.Context) ([]fare.FarePlan, error) {
	return l.Fares.ListActiveFarePlans(ctx)
}

func (l StoreLoader) LoadSurgePrices(ctx context.Context) ([]surge.Price, error) {
	return l.Surge.ListActive(ctx)
}

func (l StoreLoader) LoadTaxes(ctx context.Context) ([]tax.Tax, error) {
	return l.Taxes.ListActive(ctx)
}
