package gtfsrt

import (
	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	log "github.com/sirupsen/logrus"
)

// Observation is the normalized in-memory form of one vehicle-position
// entity. Absent upstream fields collapse to the zero value, so a zero
// coordinate is indistinguishable from an unreported one. Identity is the
// vehicle's stable id and the upsert key downstream; identity-less
// observations all carry "".
type Observation struct {
	Identity     string
	Lat          float64
	Lon          float64
	Timestamp    uint64
	Label        string
	LicensePlate string
}

// ExtractObservation builds an Observation from one feed entity. Entities
// that carry no vehicle-position payload (trip updates, alerts) return
// ok=false and are skipped by the caller.
//
// Presence is checked per field, not per sub-message: a descriptor with an
// id but no label yields the id and an empty label. The protobuf pointer
// fields preserve the absent/zero distinction right up to this point;
// collapsing to ""/0 happens here and nowhere else.
func ExtractObservation(e *gtfsrtpb.FeedEntity) (Observation, bool) {
	var obs Observation
	if e == nil || e.Vehicle == nil {
		return obs, false
	}
	vp := e.Vehicle

	if des := vp.Vehicle; des != nil {
		if des.Id != nil {
			obs.Identity = *des.Id
		} else {
			log.Debug("vehicle id unavailable")
		}
		if des.Label != nil {
			obs.Label = *des.Label
		} else {
			log.Debug("vehicle label unavailable")
		}
		if des.LicensePlate != nil {
			obs.LicensePlate = *des.LicensePlate
		} else {
			log.Debug("vehicle license plate unavailable")
		}
	} else {
		log.Debug("vehicle descriptor unavailable")
	}

	if pos := vp.Position; pos != nil {
		if pos.Latitude != nil {
			obs.Lat = float64(*pos.Latitude)
		} else {
			log.Debug("latitude unavailable")
		}
		if pos.Longitude != nil {
			obs.Lon = float64(*pos.Longitude)
		} else {
			log.Debug("longitude unavailable")
		}
	} else {
		log.Debug("position unavailable")
	}

	if vp.Timestamp != nil {
		obs.Timestamp = *vp.Timestamp
	} else {
		log.Debug("timestamp unavailable")
	}

	return obs, true
}
