package gtfsrtsink

import (
	"context"
	"errors"
	"fmt"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	log "github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/gtfsrt-location-sink/gtfsrt"
	"github.com/theoremus-urban-solutions/gtfsrt-location-sink/store"
)

// Reconciler folds vehicle observations into the persisted Location table.
type Reconciler struct {
	store store.Store
}

func NewReconciler(s store.Store) *Reconciler {
	return &Reconciler{store: s}
}

// Reconcile looks up the Location for the observation's identity and either
// overwrites the existing document or inserts a new one.
//
// Every mutable field is replaced wholesale, including alias and vehicle,
// which the extractor never populates: an observation with default-filled
// fields erases previously known values. That is the documented contract of
// the location table, not an accident.
//
// The find and the save are not one transaction. Two concurrent observations
// for the same identity resolve to whichever save lands last; the store's
// keyed upsert keeps the one-document-per-uuid invariant either way.
func (r *Reconciler) Reconcile(ctx context.Context, obs gtfsrt.Observation) error {
	loc, err := r.store.FindByUUID(ctx, obs.Identity)
	switch {
	case errors.Is(err, store.ErrNotFound):
		loc = &store.Location{UUID: obs.Identity}
	case err != nil:
		return fmt.Errorf("query location: %w", err)
	}

	loc.Lat = obs.Lat
	loc.Lon = obs.Lon
	loc.TS = obs.Timestamp
	loc.Alias = ""
	loc.Vehicle = ""
	loc.Label = obs.Label
	loc.LicensePlate = obs.LicensePlate

	if err := r.store.Save(ctx, loc); err != nil {
		return fmt.Errorf("save location: %w", err)
	}
	return nil
}

// ProcessFeed runs every entity of a decoded feed through extraction and
// reconciliation, in feed order. Entities without a vehicle payload are
// skipped. Failures are logged to the operator channel and do not stop the
// remaining entities; by the time this runs the HTTP response is long gone.
func (r *Reconciler) ProcessFeed(ctx context.Context, fm *gtfsrtpb.FeedMessage) {
	for _, entity := range fm.Entity {
		obs, ok := gtfsrt.ExtractObservation(entity)
		if !ok {
			log.Debug("entity unsupported")
			continue
		}
		if err := r.Reconcile(ctx, obs); err != nil {
			log.WithField("uuid", obs.Identity).Errorf("reconcile failed: %v", err)
		}
	}
}
