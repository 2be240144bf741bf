package pagination

// Params holds page pagination inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// Page describes one page of results in list responses.
type Page struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	PageSize    int   `json:"pageSize"`
}

// Normalize clamps the page to 1-based and the page size to the given
// default and maximum.
func Normalize(params Params, defaultSize, maxSize int) Params {
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 {
		params.PageSize = defaultSize
	}
	if maxSize > 0 && params.PageSize > maxSize {
		params.PageSize = maxSize
	}
	return params
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Build computes page metadata for a total row count.
func Build(params Params, totalCount int64) Page {
	totalPages := 0
	if params.PageSize > 0 {
		totalPages = int((totalCount + int64(params.PageSize) - 1) / int64(params.PageSize))
	}
	return Page{
		CurrentPage: params.Page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		PageSize:    params.PageSize,
	}
}
