package models

import (
	"fmt"
	"regexp"
)

var (
	bcryptHashRe = regexp.MustCompile(`^\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}$`)
	dateRe       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe       = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]:[0-5][0-9]$`)
)

// ValidationError describes a single field that failed format validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func checkSeconds(field string, v int) error {
	if v < -1 || v >= 86400 {
		return &ValidationError{Field: field, Reason: "must be in [-1, 86400)"}
	}
	return nil
}

func checkDate(field, v string) error {
	if !dateRe.MatchString(v) {
		return &ValidationError{Field: field, Reason: "expected YYYY-MM-DD"}
	}
	return nil
}

func checkTime(field, v string) error {
	if !timeRe.MatchString(v) {
		return &ValidationError{Field: field, Reason: "expected HH:MM:SS"}
	}
	return nil
}

// Validate checks every stored field against its format invariant.
// A record failing Validate must never be persisted.
func (r *SecureRecord) Validate() error {
	if r.HashedPassword != "" && !bcryptHashRe.MatchString(r.HashedPassword) {
		return &ValidationError{Field: "hashedPassword", Reason: "not a bcrypt hash"}
	}
	if err := checkSeconds("dailyTimeLimit", r.DailyTimeLimit); err != nil {
		return err
	}
	if err := checkSeconds("todayTimeLimit", r.TodayTimeLimit); err != nil {
		return err
	}
	if r.UsedTime != nil {
		if err := checkSeconds("usedTime", *r.UsedTime); err != nil {
			return err
		}
	}
	if err := checkDate("usageDate", r.UsageDate); err != nil {
		return err
	}
	if err := checkTime("bedtime", r.Bedtime); err != nil {
		return err
	}
	if err := checkTime("waketime", r.Waketime); err != nil {
		return err
	}
	return nil
}

// ValidatePartial checks only the fields present in the patch.
func (p RecordPatch) ValidatePartial() error {
	if p.HashedPassword != nil && *p.HashedPassword != "" && !bcryptHashRe.MatchString(*p.HashedPassword) {
		return &ValidationError{Field: "hashedPassword", Reason: "not a bcrypt hash"}
	}
	if p.DailyTimeLimit != nil {
		if err := checkSeconds("dailyTimeLimit", *p.DailyTimeLimit); err != nil {
			return err
		}
	}
	if p.TodayTimeLimit != nil {
		if err := checkSeconds("todayTimeLimit", *p.TodayTimeLimit); err != nil {
			return err
		}
	}
	if p.UsedTime != nil {
		if err := checkSeconds("usedTime", *p.UsedTime); err != nil {
			return err
		}
	}
	if p.UsageDate != nil {
		if err := checkDate("usageDate", *p.UsageDate); err != nil {
			return err
		}
	}
	if p.Bedtime != nil {
		if err := checkTime("bedtime", *p.Bedtime); err != nil {
			return err
		}
	}
	if p.Waketime != nil {
		if err := checkTime("waketime", *p.Waketime); err != nil {
			return err
		}
	}
	return nil
}

// ValidateComplete checks the patch as a full record, the form required on
// the creation path. UsedTime and HashedPassword stay optional; everything
// else must be present and well-formed.
func (p RecordPatch) ValidateComplete() error {
	if p.DailyTimeLimit == nil {
		return &ValidationError{Field: "dailyTimeLimit", Reason: "required"}
	}
	if p.TodayTimeLimit == nil {
		return &ValidationError{Field: "todayTimeLimit", Reason: "required"}
	}
	if p.UsageDate == nil {
		return &ValidationError{Field: "usageDate", Reason: "required"}
	}
	if p.Bedtime == nil {
		return &ValidationError{Field: "bedtime", Reason: "required"}
	}
	if p.Waketime == nil {
		return &ValidationError{Field: "waketime", Reason: "required"}
	}
	if p.GraceGiven == nil {
		return &ValidationError{Field: "graceGiven", Reason: "required"}
	}
	return p.ValidatePartial()
}
