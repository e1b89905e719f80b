package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// LongDateFormat renders a date with its weekday, used for stats date ranges
	LongDateFormat = "Monday, January 2, 2006"

	// ExcerptDateFormat renders a date inside report excerpts
	ExcerptDateFormat = "January 2, 2006"

	// StreakWindowDays bounds how far back the streak counter looks
	StreakWindowDays = 30

	// RecentFilterDays is the span covered by the "recent" history filter
	RecentFilterDays = 3
)
