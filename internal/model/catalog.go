package model

import (
	"fmt"
	"strings"
)

// PageSize is the fixed number of recipes per catalog page.
const PageSize = 12

// FilterSpec holds the conjunctive catalog criteria. Empty values and "all"
// are treated as unset.
type FilterSpec struct {
	Category   string
	Difficulty string
}

// SortKey selects the catalog ordering.
type SortKey string

const (
	SortNone   SortKey = ""
	SortRating SortKey = "rating"
	SortTime   SortKey = "time"
	SortNewest SortKey = "newest"
	SortName   SortKey = "name"
)

// ParseSortKey validates a sort key name.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortRating, SortTime, SortNewest, SortName:
		return k, nil
	default:
		return SortNone, &ValidationError{Field: "sort", Message: fmt.Sprintf("unknown sort key %q", s)}
	}
}

// DataSource names where the catalog collection came from.
type DataSource string

const (
	SourceEmpty    DataSource = "empty"
	SourceLive     DataSource = "live"
	SourceLastGood DataSource = "last-good"
	SourceDemo     DataSource = "demo"
)

// LoadReport describes the outcome of a catalog load. Degraded is set when
// the collection shown is not the result of the load that was requested.
type LoadReport struct {
	Source   DataSource
	Degraded bool
	Count    int
	Err      error
}

// CatalogView is a read-only snapshot of the current catalog page.
type CatalogView struct {
	Filter     FilterSpec
	Search     string
	Sort       SortKey
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
	Source     DataSource
	Degraded   bool
	Recipes    []Recipe
}
