package streak

import "fmt"

// Headline describes a streak length for display.
func Headline(days int) string {
	switch {
	case days <= 0:
		return "Start your journey today"
	case days == 1:
		return "1 day sober"
	default:
		return fmt.Sprintf("%d days sober", days)
	}
}

// Encouragement is the line shown under the headline.
func Encouragement(days int) string {
	if days <= 0 {
		return "Every journey begins with a single step. You can do this!"
	}
	return "Stay strong - every day sober is a victory!"
}
