package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by FindByUUID when no Location exists for the
// requested vehicle identity.
var ErrNotFound = errors.New("location not found")

// Location is the persisted current-state record, at most one per distinct
// uuid. Alias and Vehicle are reserved fields carried for compatibility with
// the historical document layout; the ingest pipeline always writes them
// empty.
type Location struct {
	UUID         string  `bson:"uuid" json:"uuid"`
	Lat          float64 `bson:"lat" json:"lat"`
	Lon          float64 `bson:"lon" json:"lon"`
	TS           uint64  `bson:"ts" json:"ts"`
	Alias        string  `bson:"alias" json:"alias"`
	Vehicle      string  `bson:"vehicle" json:"vehicle"`
	Label        string  `bson:"label" json:"label"`
	LicensePlate string  `bson:"licensePlate" json:"licensePlate"`
}

// Store is the find/save surface the reconciler works against.
type Store interface {
	// FindByUUID returns the stored Location for a vehicle identity, or
	// ErrNotFound.
	FindByUUID(ctx context.Context, uuid string) (*Location, error)

	// Save writes the document, replacing any existing one with the same
	// uuid. The write is atomic per document.
	Save(ctx context.Context, loc *Location) error

	// Close releases the backend connection.
	Close() error
}

// Config selects and parameterizes a backend.
type Config struct {
	Backend string `yaml:"backend" validate:"omitempty,oneof=mongo redis memory"`

	// mongo
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`

	// redis
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Open connects the configured backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", "mongo":
		return OpenMongo(ctx, cfg)
	case "redis":
		return OpenRedis(ctx, cfg)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
