package gtfsrtsink

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/gtfsrt-location-sink/gtfsrt"
)

// maxFeedBody caps one feed push. Real VehiclePositions envelopes are a few
// hundred KB at most even for large fleets.
const maxFeedBody = 16 << 20

// handleFeedPost accepts one serialized feed envelope per request. The body
// is decoded synchronously so malformed pushes surface in the log with the
// request still in scope; persistence runs on a background goroutine and the
// response does not wait for it. The publisher always gets an empty 200 —
// even for a payload that failed to decode, matching the contract the
// publishers were built against.
func handleFeedPost(rec *Reconciler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.WithFields(log.Fields{
			"request_id": uuid.NewString(),
			"method":     r.Method,
			"path":       r.URL.Path,
		})

		body, err := io.ReadAll(io.LimitReader(r.Body, maxFeedBody))
		if err != nil {
			reqLog.Errorf("read body: %v", err)
			w.WriteHeader(http.StatusOK)
			return
		}
		reqLog.Debugf("body length %d", len(body))

		fm, err := gtfsrt.Decode(body)
		if err != nil {
			reqLog.Errorf("%v", err)
			w.WriteHeader(http.StatusOK)
			return
		}
		reqLog.WithField("entities", len(fm.Entity)).Info("feed received")

		go rec.ProcessFeed(context.Background(), fm)

		w.WriteHeader(http.StatusOK)
	}
}
