package pagination

import (
	"fmt"
	"math"
)

// OffsetRequest represents an offset-based pagination request
type OffsetRequest struct {
	Page int `json:"page" query:"page"`
	Size int `json:"size" query:"size"`
}

// Normalize fills defaults and rejects negative values and pages whose
// offset would not fit in an int. Sizes above PageMaxSize are clamped.
func (r *OffsetRequest) Normalize() error {
	if r.Page < 0 || r.Size < 0 {
		return fmt.Errorf("page and size must not be negative, got page=%d size=%d", r.Page, r.Size)
	}
	if r.Page == 0 {
		r.Page = 1
	}
	if r.Size == 0 {
		r.Size = PageDefaultSize
	}
	if r.Size > PageMaxSize {
		r.Size = PageMaxSize
	}
	if r.Page > math.MaxInt/r.Size {
		return fmt.Errorf("page %d is out of range for size %d", r.Page, r.Size)
	}
	return nil
}

func (r OffsetRequest) Offset() int {
	return (r.Page - 1) * r.Size
}
