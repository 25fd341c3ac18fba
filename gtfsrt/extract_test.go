package gtfsrt

import (
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

func TestExtractObservation_NoVehiclePayload(t *testing.T) {
	entities := []*gtfsrtpb.FeedEntity{
		nil,
		{Id: proto.String("1")},
		{
			Id: proto.String("2"),
			TripUpdate: &gtfsrtpb.TripUpdate{
				Trip: &gtfsrtpb.TripDescriptor{TripId: proto.String("T1")},
			},
		},
	}
	for _, e := range entities {
		_, ok := ExtractObservation(e)
		assert.False(t, ok)
	}
}

func TestExtractObservation_FullEntity(t *testing.T) {
	e := &gtfsrtpb.FeedEntity{
		Id: proto.String("1"),
		Vehicle: &gtfsrtpb.VehiclePosition{
			Vehicle: &gtfsrtpb.VehicleDescriptor{
				Id:    proto.String("bus-7"),
				Label: proto.String("Route 7"),
			},
			Position: &gtfsrtpb.Position{
				Latitude:  proto.Float32(52.5),
				Longitude: proto.Float32(13.4),
			},
			Timestamp: proto.Uint64(1000),
		},
	}

	obs, ok := ExtractObservation(e)
	require.True(t, ok)
	assert.Equal(t, "bus-7", obs.Identity)
	assert.InDelta(t, 52.5, obs.Lat, 1e-6)
	assert.InDelta(t, 13.4, obs.Lon, 1e-6)
	assert.Equal(t, uint64(1000), obs.Timestamp)
	assert.Equal(t, "Route 7", obs.Label)
	assert.Equal(t, "", obs.LicensePlate)
}

func TestExtractObservation_DefaultFill(t *testing.T) {
	// Vehicle payload present but descriptor, position and timestamp all
	// absent: every field collapses to the zero value.
	e := &gtfsrtpb.FeedEntity{
		Id:      proto.String("1"),
		Vehicle: &gtfsrtpb.VehiclePosition{},
	}

	obs, ok := ExtractObservation(e)
	require.True(t, ok)
	assert.Equal(t, Observation{}, obs)
}

func TestExtractObservation_FieldLevelPresence(t *testing.T) {
	// Descriptor present with only a license plate; position present with
	// only a latitude. Presence is checked per field, not per sub-message.
	e := &gtfsrtpb.FeedEntity{
		Id: proto.String("1"),
		Vehicle: &gtfsrtpb.VehiclePosition{
			Vehicle: &gtfsrtpb.VehicleDescriptor{
				LicensePlate: proto.String("B-XY 123"),
			},
			Position: &gtfsrtpb.Position{
				Latitude: proto.Float32(48.1),
			},
		},
	}

	obs, ok := ExtractObservation(e)
	require.True(t, ok)
	assert.Equal(t, "", obs.Identity)
	assert.Equal(t, "B-XY 123", obs.LicensePlate)
	assert.InDelta(t, 48.1, obs.Lat, 1e-6)
	assert.Equal(t, float64(0), obs.Lon)
	assert.Equal(t, uint64(0), obs.Timestamp)
}

func TestExtractObservation_ZeroCoordinateIndistinguishableFromAbsent(t *testing.T) {
	// A reported 0/0 position and an absent one produce the same
	// observation. Documented precision loss of the default-fill policy.
	reported := &gtfsrtpb.FeedEntity{
		Vehicle: &gtfsrtpb.VehiclePosition{
			Vehicle: &gtfsrtpb.VehicleDescriptor{Id: proto.String("bus-0")},
			Position: &gtfsrtpb.Position{
				Latitude:  proto.Float32(0),
				Longitude: proto.Float32(0),
			},
		},
	}
	absent := &gtfsrtpb.FeedEntity{
		Vehicle: &gtfsrtpb.VehiclePosition{
			Vehicle: &gtfsrtpb.VehicleDescriptor{Id: proto.String("bus-0")},
		},
	}

	a, ok := ExtractObservation(reported)
	require.True(t, ok)
	b, ok := ExtractObservation(absent)
	require.True(t, ok)
	assert.Equal(t, a, b)
}
