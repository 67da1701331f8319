// File: utils/constants.go
package utils

import (
	"time"

	"fairway/config"
)

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// SessionCachePrefix is the prefix used for Redis selection-session keys.
const SessionCachePrefix = "booksess:"

// IsProduction reports whether the service runs with the production profile.
func IsProduction() bool {
	return config.IsProduction()
}
