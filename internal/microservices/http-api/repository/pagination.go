package repository

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPageNumber keeps Offset within int32 for every allowed page size.
	MaxPageNumber = math.MaxInt32 / MaxPageSize
)

// Page selects a window of a listing. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps user input to sane bounds.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if number > MaxPageNumber {
		number = MaxPageNumber
	}
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}
