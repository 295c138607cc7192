package models

import (
	"encoding/json"
	"errors"
	"testing"
)

// jsonKeys marshals v and reports which top-level keys appear.
func jsonKeys(t *testing.T, v any) map[string]bool {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	keys := make(map[string]bool, len(m))
	for k := range m {
		keys[k] = true
	}
	return keys
}

func wantField(t *testing.T, err error, field string) {
	t.Helper()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v; want a ValidationError", err)
	}
	if vErr.Field != field {
		t.Errorf("field = %q; want %q", vErr.Field, field)
	}
}

func TestValidate_AcceptsSentinelsAndBounds(t *testing.T) {
	rec := baseRecord()
	rec.DailyTimeLimit = -1
	rec.TodayTimeLimit = 86399
	rec.UsedTime = iptr(0)
	if err := rec.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Unset credential is a valid pre-credential state.
	rec.HashedPassword = ""
	if err := rec.Validate(); err != nil {
		t.Fatalf("pre-credential record must validate: %v", err)
	}
}

func TestValidate_RejectsOutOfRangeAndFormat(t *testing.T) {
	rec := baseRecord()
	rec.DailyTimeLimit = 86400
	wantField(t, rec.Validate(), "dailyTimeLimit")

	rec = baseRecord()
	rec.UsedTime = iptr(-2)
	wantField(t, rec.Validate(), "usedTime")

	rec = baseRecord()
	rec.UsageDate = "2024/01/15"
	wantField(t, rec.Validate(), "usageDate")

	rec = baseRecord()
	rec.Bedtime = "24:00:00"
	wantField(t, rec.Validate(), "bedtime")

	rec = baseRecord()
	rec.Waketime = "07:00"
	wantField(t, rec.Validate(), "waketime")

	rec = baseRecord()
	rec.HashedPassword = "plaintext"
	wantField(t, rec.Validate(), "hashedPassword")
}

func TestValidatePartial_ChecksOnlyPresentFields(t *testing.T) {
	if err := (RecordPatch{}).ValidatePartial(); err != nil {
		t.Fatalf("empty patch must validate: %v", err)
	}
	if err := (RecordPatch{UsedTime: iptr(100)}).ValidatePartial(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantField(t,
		RecordPatch{Bedtime: sptr("9pm")}.ValidatePartial(), "bedtime")
}

func TestValidateComplete_RequiresEveryField(t *testing.T) {
	full := RecordPatch{
		DailyTimeLimit: iptr(7200),
		TodayTimeLimit: iptr(7200),
		UsageDate:      sptr("2024-01-15"),
		Bedtime:        sptr("22:00:00"),
		Waketime:       sptr("07:00:00"),
		GraceGiven:     bptr(false),
	}
	if err := full.ValidateComplete(); err != nil {
		t.Fatalf("complete patch must validate: %v", err)
	}

	// usedTime and hashedPassword stay optional on the creation path.
	missing := full
	missing.GraceGiven = nil
	wantField(t, missing.ValidateComplete(), "graceGiven")

	missing = full
	missing.UsageDate = nil
	wantField(t, missing.ValidateComplete(), "usageDate")
}
