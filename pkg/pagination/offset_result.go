package pagination

// OffsetResult is one page of an in-memory sequence.
type OffsetResult[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Size    int   `json:"size"`
	HasMore bool  `json:"has_more"`
}

// NewOffsetResult creates a new offset-based result
func NewOffsetResult[T any](items []T, total int64, page int, size int) *OffsetResult[T] {
	hasMore := int64(page) <= total/int64(max(size, 1)) && int64(page)*int64(size) < total

	return &OffsetResult[T]{
		Items:   items,
		Total:   total,
		Page:    page,
		Size:    size,
		HasMore: hasMore,
	}
}

// Paginate cuts the requested page out of all. req must be normalized.
func Paginate[T any](all []T, req OffsetRequest) *OffsetResult[T] {
	start := min(max(req.Offset(), 0), len(all))
	end := min(start+req.Size, len(all))

	items := make([]T, end-start)
	copy(items, all[start:end])
	return NewOffsetResult(items, int64(len(all)), req.Page, req.Size)
}
