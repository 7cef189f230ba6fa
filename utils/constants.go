package utils

import (
	"time"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Carrier call constants
const (
	// DefaultCarrierTimeout bounds a single Covercube rate quote call
	DefaultCarrierTimeout = 30 * time.Second

	// MaxCarrierResponseBytes caps how much of a carrier response is read (4 MiB)
	MaxCarrierResponseBytes = 4 * 1024 * 1024
)
