package types

import "time"

// SafetyLevel classifies how risky it is to delete a category's items.
type SafetyLevel string

const (
	SafetySafe     SafetyLevel = "safe"
	SafetyModerate SafetyLevel = "moderate"
	SafetyRisky    SafetyLevel = "risky"
)

// Category is a statically configured grouping of cleanable items.
// SupportsFiles marks categories where individual files can be picked;
// everything else is cleaned all-or-nothing.
type Category struct {
	ID            string      `yaml:"id"`
	Name          string      `yaml:"name"`
	Safety        SafetyLevel `yaml:"safety"`
	SupportsFiles bool        `yaml:"supports_files"`
	Note          string      `yaml:"note,omitempty"`
	Paths         []string    `yaml:"paths,omitempty"`
	Patterns      []string    `yaml:"patterns,omitempty"`
	MaxAgeDays    int         `yaml:"max_age_days,omitempty"`
	MinSize       int64       `yaml:"min_size,omitempty"`
}

// CleanableItem is a single file or directory eligible for cleanup.
// The path is the unique identifier; items are never mutated after a scan.
type CleanableItem struct {
	Path       string
	Name       string
	Size       int64
	IsDir      bool
	ModifiedAt time.Time
}

// ScanResult pairs a category with the items discovered for it.
type ScanResult struct {
	Category  Category
	Items     []CleanableItem
	TotalSize int64
}

// CleanResult reports what happened while cleaning one category.
type CleanResult struct {
	Category     Category
	CleanedItems int
	FreedSpace   int64
	Errors       []string
}

// Report aggregates clean results across all categories.
type Report struct {
	FreedSpace   int64
	CleanedItems int
	FailedItems  int
	Results      []CleanResult
	Duration     time.Duration
}

func NewScanResult(category Category) *ScanResult {
	return &ScanResult{Category: category}
}

// Messages passed through the bubbletea update loop.

type ScanProgressMsg struct {
	Category string
	Path     string
	Found    int
	Size     int64
}

type ScanCompleteMsg struct {
	Results   []*ScanResult
	TotalSize int64
}

type CleanProgressMsg struct {
	Completed int
	Total     int
	Current   string
}

type CleanCompleteMsg struct {
	Report Report
}

type ErrMsg struct{ Err error }

func (e ErrMsg) Error() string { return e.Err.Error() }
