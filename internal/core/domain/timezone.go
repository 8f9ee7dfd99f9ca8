package domain

// Timezone is master data served from a Redis-backed cache. Admin writes
// invalidate the cache key; a TTL bounds staleness if an invalidation is lost.
type Timezone struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	UTCOffset    string `json:"utcOffset"`
	AuditFields
}
