package outline

import "fmt"

// Policy holds the tunable heuristics of the outline pipeline.
type Policy struct {
	// SizeMultiplier scales the average font size to get the H2 threshold.
	SizeMultiplier float64
	// MergeDistance is the maximum vertical gap (exclusive) between two
	// same-page candidates that are joined into one heading.
	MergeDistance float64
	// MinChars is the minimum heading length in characters.
	MinChars int
	// MaxWords is the maximum heading length in whitespace-separated words.
	MaxWords int
	// ExcludeInvalidSizes drops size <= 0 blocks from the font statistics.
	ExcludeInvalidSizes bool
	// FallbackTitle is used when no heading survives.
	FallbackTitle string
}

// DefaultPolicy returns the stock heuristics.
func DefaultPolicy() Policy {
	return Policy{
		SizeMultiplier:      1.15,
		MergeDistance:       8,
		MinChars:            4,
		MaxWords:            12,
		ExcludeInvalidSizes: true,
		FallbackTitle:       "Untitled",
	}
}

// Validate checks that every threshold is usable.
func (p Policy) Validate() error {
	if p.SizeMultiplier <= 0 {
		return fmt.Errorf("size multiplier must be positive, got %v", p.SizeMultiplier)
	}
	if p.MergeDistance < 0 {
		return fmt.Errorf("merge distance must not be negative, got %v", p.MergeDistance)
	}
	if p.MinChars < 0 {
		return fmt.Errorf("min chars must not be negative, got %d", p.MinChars)
	}
	if p.MaxWords <= 0 {
		return fmt.Errorf("max words must be positive, got %d", p.MaxWords)
	}
	return nil
}
