// Package gtfsrt decodes GTFS-Realtime protobuf payloads and extracts
// vehicle-position observations from them.
//
// The schema binding is the compiled protobuf bindings from
// MobilityData/gtfs-realtime-bindings; it is immutable for the lifetime of
// the process. Decoding and extraction are pure in-memory transforms.
package gtfsrt
