package gtfsrtsink

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/gtfsrt-location-sink/store"
)

func marshalFeed(t *testing.T, entities ...*gtfsrtpb.FeedEntity) []byte {
	t.Helper()
	data, err := proto.Marshal(&gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
		Entity: entities,
	})
	require.NoError(t, err)
	return data
}

func TestHandleFeedPost_AcceptsAndPersists(t *testing.T) {
	db := store.NewMemory()
	handler := handleFeedPost(NewReconciler(db))

	body := marshalFeed(t, &gtfsrtpb.FeedEntity{
		Id: proto.String("1"),
		Vehicle: &gtfsrtpb.VehiclePosition{
			Vehicle: &gtfsrtpb.VehicleDescriptor{Id: proto.String("bus-7"), Label: proto.String("Route 7")},
			Position: &gtfsrtpb.Position{
				Latitude:  proto.Float32(52.5),
				Longitude: proto.Float32(13.4),
			},
			Timestamp: proto.Uint64(1000),
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/post", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/octet-stream")
	rw := httptest.NewRecorder()
	handler(rw, req)

	assert.Equal(t, http.StatusOK, rw.Code)
	assert.Empty(t, rw.Body.Bytes())

	// Persistence is fire-and-forget; only its eventual result is observable.
	require.Eventually(t, func() bool {
		_, err := db.FindByUUID(context.Background(), "bus-7")
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	loc, err := db.FindByUUID(context.Background(), "bus-7")
	require.NoError(t, err)
	assert.InDelta(t, 52.5, loc.Lat, 1e-6)
	assert.InDelta(t, 13.4, loc.Lon, 1e-6)
	assert.Equal(t, uint64(1000), loc.TS)
	assert.Equal(t, "Route 7", loc.Label)
}

func TestHandleFeedPost_DecodeFailureStillAcknowledged(t *testing.T) {
	db := store.NewMemory()
	handler := handleFeedPost(NewReconciler(db))

	req := httptest.NewRequest(http.MethodPost, "/post", bytes.NewReader([]byte{0xff, 0xff}))
	rw := httptest.NewRecorder()
	handler(rw, req)

	assert.Equal(t, http.StatusOK, rw.Code)
	assert.Equal(t, 0, db.Count(), "no location mutation on decode failure")
}

func TestHandleFeedPost_EmptyBodyStillAcknowledged(t *testing.T) {
	db := store.NewMemory()
	handler := handleFeedPost(NewReconciler(db))

	req := httptest.NewRequest(http.MethodPost, "/post", bytes.NewReader(nil))
	rw := httptest.NewRecorder()
	handler(rw, req)

	assert.Equal(t, http.StatusOK, rw.Code)
	assert.Equal(t, 0, db.Count())
}

func TestHandleHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rw := httptest.NewRecorder()
	handleHealth(rw, req)

	assert.Equal(t, http.StatusOK, rw.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rw.Body.String())
}
