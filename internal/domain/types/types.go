// Package types contains common types used across the application
package types

// Entry represents a standings row. Wrestlers with equal points share a
// rank and the next distinct total skips ahead (1, 1, 3).
type Entry struct {
	Rank         int    `json:"rank"`
	WrestlerName string `json:"wrestlerName"`
	TotalPoints  int    `json:"totalPoints"`
}
