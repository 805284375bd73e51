package domain

import "fmt"

// SchoolYear formats an end year the way MSDE publications label school
// years: 2024 -> "2023-24", 2003 -> "2002-03".
func SchoolYear(endYear int) string {
	return fmt.Sprintf("%d-%02d", endYear-1, endYear%100)
}
