package models

import "testing"

func iptr(v int) *int { return &v }

func sptr(v string) *string { return &v }

func bptr(v bool) *bool { return &v }

func baseRecord() SecureRecord {
	return SecureRecord{
		DailyTimeLimit: 7200,
		TodayTimeLimit: 3600,
		UsageDate:      "2024-01-15",
		Bedtime:        "22:00:00",
		Waketime:       "07:00:00",
		SyncAuthor:     "a-key",
		AuthKeys:       []string{"a-key", "b-key"},
	}
}

func TestApply_OverlaysOnlyPresentFields(t *testing.T) {
	rec := baseRecord()
	rec.Apply(RecordPatch{
		UsedTime:   iptr(100),
		GraceGiven: bptr(true),
		SyncAuthor: sptr("b-key"), // must be ignored
	})

	if rec.UsedTime == nil || *rec.UsedTime != 100 {
		t.Errorf("usedTime = %v; want 100", rec.UsedTime)
	}
	if !rec.GraceGiven {
		t.Error("graceGiven not applied")
	}
	if rec.DailyTimeLimit != 7200 || rec.Bedtime != "22:00:00" {
		t.Error("absent fields must keep their values")
	}
	if rec.SyncAuthor != "a-key" {
		t.Error("Apply must never touch the sync author")
	}
}

func TestClient_StripsCredentialAndKeys(t *testing.T) {
	rec := baseRecord()
	rec.HashedPassword = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

	c := rec.Client()
	if c.SyncAuthor != "a-key" || c.DailyTimeLimit != 7200 {
		t.Errorf("projection = %+v", c)
	}
	// The projection type has no credential or key fields at all; this
	// guards the JSON surface instead.
	if got := jsonKeys(t, c); got["hashedPassword"] || got["authKeys"] {
		t.Errorf("projection leaks secure fields: %v", got)
	}
}

func TestHasKey(t *testing.T) {
	rec := baseRecord()
	if !rec.HasKey("b-key") {
		t.Error("issued key not recognized")
	}
	if rec.HasKey("c-key") {
		t.Error("foreign key recognized")
	}
	if rec.HasKey("") {
		t.Error("empty key must never validate")
	}
}
