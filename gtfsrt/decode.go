package gtfsrt

import (
	"fmt"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// DecodeError reports a payload that does not conform to the GTFS-Realtime
// schema. The wrapped error carries the protobuf-level detail.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode feed message: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode parses a serialized feed envelope into a FeedMessage.
//
// A zero-length buffer is rejected: protobuf would happily decode it into an
// empty message, but an empty push body is always a producer error, never a
// feed with no entities. On failure the result is a *DecodeError and the
// message must not be used.
func Decode(data []byte) (*gtfsrtpb.FeedMessage, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Err: fmt.Errorf("empty payload")}
	}
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &fm, nil
}
