package aggregate

import (
	"fmt"
	"time"
)

// Age renders an animal's age from its birth date: whole days under a
// month, whole months under a year, otherwise compact "Xy Zm" with the
// leftover months ((days%365)/30), or plain years when that is zero.
// A nil birth date is "Unknown", not an error.
func Age(birth *time.Time, now time.Time) string {
	if birth == nil {
		return "Unknown"
	}
	days := int(now.Sub(*birth).Hours() / 24)
	if days < 0 {
		days = 0
	}
	switch {
	case days < 30:
		return fmt.Sprintf("%d days", days)
	case days < 365:
		return plural(days/30, "month")
	default:
		years := days / 365
		months := (days % 365) / 30
		if months == 0 {
			return plural(years, "year")
		}
		return fmt.Sprintf("%dy %dm", years, months)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
