// Package config reads typed settings from a file with environment overrides.
package config

import (
	"io"
	"time"
)

// Config is the read-only view of the application settings.
// Missing keys resolve to the zero value of the requested type.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetUint(key string) uint
	GetFloat64(key string) float64

	// GetSecond reads an integer number of seconds.
	GetSecond(key string) time.Duration
	// GetMinute reads an integer number of minutes.
	GetMinute(key string) time.Duration

	// GetBinary decodes a base64 value.
	GetBinary(key string) []byte
	// GetArray splits a comma separated value, trimming blanks.
	GetArray(key string) []string
	// GetMap parses "k:v,k:v" pairs.
	GetMap(key string) map[string]string
}
