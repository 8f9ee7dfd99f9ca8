package models

// Timezone maps one row of wit_timezones.
type Timezone struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	UTCOffset    string `json:"utcOffset"`
	AuditFields
}
