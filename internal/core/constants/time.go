package constants

const (
	// LineTimeLayout is the timestamp prefix of every timelog line.
	LineTimeLayout = "2006-01-02 15:04"
	// LineTimeLength is the byte length of a formatted LineTimeLayout.
	LineTimeLength = len(LineTimeLayout)

	// MarkerSuffix ends every arrival/start line.
	MarkerSuffix = "**"
	// ArrivalBody is appended by the arrival command.
	ArrivalBody = "arrived" + MarkerSuffix

	// ReportTimeLayout renders report range boundaries.
	ReportTimeLayout = "2006-01-02 15:04:05"
	// ReportMonthLayout renders "25-09 (September 2025)".
	ReportMonthLayout = "06-01 (January 2006)"

	DefaultLineWidth   = 80
	DefaultSearchLimit = 10
	DefaultListLimit   = 20
)
