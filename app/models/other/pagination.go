package other

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type PageQuery struct {
	Page  int
	Limit int
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

func NewPagination(q PageQuery, total int64) Pagination {
	totalPages := 0
	if q.Limit > 0 {
		totalPages = int((total + int64(q.Limit) - 1) / int64(q.Limit))
	}
	return Pagination{
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

type UserFilter struct {
	PageQuery
	Search string
}

type CategoryFilter struct {
	PageQuery
	Search     string
	ActiveOnly bool
}

type ProductFilter struct {
	PageQuery
	Search     string
	CategoryID string
	Type       string
	Active     *bool
}

type OrderFilter struct {
	PageQuery
	Status string
	Search string
}
