// Package models defines the stored and client-facing representations of a
// synchronized usage-limit record, plus validation of their field formats.
package models

// SecureRecord is the full server-side state for one record identifier.
// It is what gets serialized into the store and must never be returned
// to a client as-is.
type SecureRecord struct {
	// HashedPassword is the bcrypt hash guarding authorization. An empty
	// string means no credential has been set yet; Authorize always fails
	// against such a record until a sync write supplies one.
	HashedPassword string `json:"hashedPassword,omitempty"`
	// DailyTimeLimit is the allowed screen time per day in seconds,
	// or -1 for no limit.
	DailyTimeLimit int `json:"dailyTimeLimit"`
	// TodayTimeLimit is the limit effective for the current day in seconds,
	// or -1 for no limit.
	TodayTimeLimit int `json:"todayTimeLimit"`
	// UsedTime is the seconds consumed on UsageDate. Nil when the client
	// has not reported usage yet.
	UsedTime *int `json:"usedTime,omitempty"`
	// UsageDate is the calendar day UsedTime refers to, as YYYY-MM-DD.
	UsageDate string `json:"usageDate"`
	// Bedtime is the daily lockout start, as HH:MM:SS.
	Bedtime string `json:"bedtime"`
	// Waketime is the daily lockout end, as HH:MM:SS.
	Waketime string `json:"waketime"`
	// GraceGiven reports whether extra time was granted today.
	GraceGiven bool `json:"graceGiven"`
	// SyncAuthor is the auth key that performed the most recently accepted
	// write. Always a member of AuthKeys once the record exists.
	SyncAuthor string `json:"syncAuthor"`
	// AuthKeys holds every auth key ever issued for this record. It only
	// grows; the sole shrink path is deleting the whole record.
	AuthKeys []string `json:"authKeys"`
}

// ClientRecord is the projection of a SecureRecord that authenticated
// clients may see: the credential hash and the key list are stripped.
type ClientRecord struct {
	DailyTimeLimit int    `json:"dailyTimeLimit"`
	TodayTimeLimit int    `json:"todayTimeLimit"`
	UsedTime       *int   `json:"usedTime,omitempty"`
	UsageDate      string `json:"usageDate"`
	Bedtime        string `json:"bedtime"`
	Waketime       string `json:"waketime"`
	GraceGiven     bool   `json:"graceGiven"`
	SyncAuthor     string `json:"syncAuthor"`
}

// RecordPatch is a partial client submission. Every field is optional;
// nil means "leave the stored value alone".
type RecordPatch struct {
	// HashedPassword is write-only: a client may set or rotate the
	// credential through a sync write, but it is never projected back.
	HashedPassword *string `json:"hashedPassword,omitempty"`
	DailyTimeLimit *int    `json:"dailyTimeLimit,omitempty"`
	TodayTimeLimit *int    `json:"todayTimeLimit,omitempty"`
	UsedTime       *int    `json:"usedTime,omitempty"`
	UsageDate      *string `json:"usageDate,omitempty"`
	Bedtime        *string `json:"bedtime,omitempty"`
	Waketime       *string `json:"waketime,omitempty"`
	GraceGiven     *bool   `json:"graceGiven,omitempty"`
	// SyncAuthor is not a field write. It is the author the client believes
	// is current, used by the acceptance test to prove the client has seen
	// the latest state.
	SyncAuthor *string `json:"syncAuthor,omitempty"`
}

// Client returns the client-facing projection of the record.
func (r *SecureRecord) Client() ClientRecord {
	return ClientRecord{
		DailyTimeLimit: r.DailyTimeLimit,
		TodayTimeLimit: r.TodayTimeLimit,
		UsedTime:       r.UsedTime,
		UsageDate:      r.UsageDate,
		Bedtime:        r.Bedtime,
		Waketime:       r.Waketime,
		GraceGiven:     r.GraceGiven,
		SyncAuthor:     r.SyncAuthor,
	}
}

// HasKey reports whether key is a non-empty member of AuthKeys.
func (r *SecureRecord) HasKey(key string) bool {
	if key == "" {
		return false
	}
	for _, k := range r.AuthKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Apply overlays the patch onto the record. Nil patch fields keep their
// stored values. The patch's SyncAuthor is deliberately ignored: the new
// author is decided by the caller after the write is accepted.
func (r *SecureRecord) Apply(p RecordPatch) {
	if p.HashedPassword != nil {
		r.HashedPassword = *p.HashedPassword
	}
	if p.DailyTimeLimit != nil {
		r.DailyTimeLimit = *p.DailyTimeLimit
	}
	if p.TodayTimeLimit != nil {
		r.TodayTimeLimit = *p.TodayTimeLimit
	}
	if p.UsedTime != nil {
		r.UsedTime = p.UsedTime
	}
	if p.UsageDate != nil {
		r.UsageDate = *p.UsageDate
	}
	if p.Bedtime != nil {
		r.Bedtime = *p.Bedtime
	}
	if p.Waketime != nil {
		r.Waketime = *p.Waketime
	}
	if p.GraceGiven != nil {
		r.GraceGiven = *p.GraceGiven
	}
}
