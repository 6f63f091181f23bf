package library

import (
	"strings"
	"time"
)

// Format enumerates the supported physical media formats.
type Format string

const (
	FormatDVD    Format = "DVD"
	FormatBluRay Format = "Blu-ray"
	Format4K     Format = "4K"
)

// DefaultFormat is assumed when an item is added without a format.
const DefaultFormat = FormatBluRay

var knownFormats = map[Format]struct{}{
	FormatDVD:    {},
	FormatBluRay: {},
	Format4K:     {},
}

// ParseFormat maps free-form input onto a known format, defaulting to
// Blu-ray for empty or unrecognized values.
func ParseFormat(value string) Format {
	trimmed := strings.TrimSpace(value)
	for format := range knownFormats {
		if strings.EqualFold(trimmed, string(format)) {
			return format
		}
	}
	return DefaultFormat
}

// Item is a single cataloged media record.
type Item struct {
	ID         int64
	Title      string
	Year       int // 0 when unknown
	Plot       string
	PosterURL  string
	PosterPath string
	Format     Format
	Watched    bool
	Location   string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Source     string
	SourceID   string
}

// ItemDraft carries the fields accepted when creating an item.
type ItemDraft struct {
	Title      string
	Year       int
	Plot       string
	PosterURL  string
	PosterPath string
	Format     Format
	Watched    bool
	Location   string
	Notes      string
	Source     string
	SourceID   string
}

// ItemUpdate describes a partial item edit. Nil fields are left untouched.
type ItemUpdate struct {
	Title      *string
	Year       *int
	Plot       *string
	Format     *Format
	Watched    *bool
	Location   *string
	Notes      *string
	PosterURL  *string
	PosterPath *string
}

func (u ItemUpdate) empty() bool {
	return u.Title == nil && u.Year == nil && u.Plot == nil && u.Format == nil &&
		u.Watched == nil && u.Location == nil && u.Notes == nil &&
		u.PosterURL == nil && u.PosterPath == nil
}

// List is a named, ordered collection of items.
type List struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// ListEntry pairs an item with its position inside one list.
type ListEntry struct {
	Position int
	Item     *Item
}

// SortKey selects the ordering for library queries.
type SortKey string

const (
	SortTitleAsc  SortKey = "title_asc"
	SortTitleDesc SortKey = "title_desc"
	SortYearDesc  SortKey = "year_desc"
	SortAddedDesc SortKey = "added_desc"
)

// ParseSortKey validates a sort key, falling back to title ascending.
func ParseSortKey(value string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(value))) {
	case SortTitleDesc:
		return SortTitleDesc
	case SortYearDesc:
		return SortYearDesc
	case SortAddedDesc:
		return SortAddedDesc
	default:
		return SortTitleAsc
	}
}

// Direction selects which neighbor a list move swaps with.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// LibraryStats aggregates catalog counts for status output.
type LibraryStats struct {
	Items    int
	Watched  int
	ByFormat map[Format]int
	Lists    int
}
