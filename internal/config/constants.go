package config

// Supported end-year range for enrollment fetches. The first long-format
// publication covers the 2002-03 school year; the upper bound tracks the
// latest published release.
const (
	MinEndYear = 2003
	MaxEndYear = 2025
)

// AvailableYears returns every supported end year in ascending order.
func AvailableYears() []int {
	years := make([]int, 0, MaxEndYear-MinEndYear+1)
	for y := MinEndYear; y <= MaxEndYear; y++ {
		years = append(years, y)
	}
	return years
}

// YearSupported reports whether an end year is inside the supported range.
func YearSupported(year int) bool {
	return year >= MinEndYear && year <= MaxEndYear
}
