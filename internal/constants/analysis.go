package constants

// Analysis thresholds. Changing any of these changes report output.
const (
	ChallengeMinWordLen  = 3 // words must be strictly longer
	InsightMinWordLen    = 4 // words must be strictly longer
	BlockerMinPhraseLen  = 10
	BlockerPhraseKeyLen  = 50
	TopChallengesLimit   = 5
	ProductiveDaysLimit  = 3
	BlockerPatternsLimit = 3
	InsightKeywordsLimit = 7

	// Trend windows and the dead band (percentage points) around "stable"
	TrendMinEntries = 3
	TrendWindow     = 7
	TrendDeadBand   = 10

	PreviewMaxLen = 150

	NoDataRange            = "No data"
	InsufficientAnalysis   = "Insufficient data for analysis"
	InsufficientTrend      = "Insufficient data for trend analysis"
	TrendImproving         = "Positive trend: productivity is growing"
	TrendDeclining         = "Productivity decline: worth paying attention"
	TrendStable            = "Stable productivity"
	EmptyExportPlaceholder = "Not enough data to export. Keep your journal for a few days to get a meaningful analysis."
	EmptyEntryPreview      = "Empty entry"
)
