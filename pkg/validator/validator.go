package validator

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
)

// Tags registered on the binding engine.
const (
	TagClock    = "clock"
	TagWeekdays = "weekdays"
)

const Everyday = "EVERYDAY"

var weekdays = map[string]struct{}{
	"MON": {}, "TUE": {}, "WED": {}, "THU": {}, "FRI": {}, "SAT": {}, "SUN": {},
}

// IsClock reports whether s is a 24-hour "HH:MM" time.
func IsClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// IsWeekdays reports whether s is EVERYDAY or a comma separated list of distinct
// MON..SUN markers.
func IsWeekdays(s string) bool {
	if s == Everyday {
		return true
	}
	if s == "" {
		return false
	}

	seen := make(map[string]struct{}, len(weekdays))
	for _, d := range strings.Split(s, ",") {
		if _, ok := weekdays[d]; !ok {
			return false
		}
		if _, dup := seen[d]; dup {
			return false
		}
		seen[d] = struct{}{}
	}
	return true
}

func validateClock(fl playground.FieldLevel) bool {
	return IsClock(fl.Field().String())
}

func validateWeekdays(fl playground.FieldLevel) bool {
	return IsWeekdays(fl.Field().String())
}

// Register adds the custom tags to v and reports field names by their json key.
func Register(v *playground.Validate) error {
	if err := v.RegisterValidation(TagClock, validateClock); err != nil {
		return fmt.Errorf("failed to register %s: %w", TagClock, err)
	}
	if err := v.RegisterValidation(TagWeekdays, validateWeekdays); err != nil {
		return fmt.Errorf("failed to register %s: %w", TagWeekdays, err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return nil
}
