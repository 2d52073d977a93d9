package model

import (
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	// MaxPageSize caps the requested page size. Larger requests are
	// silently reduced, not rejected.
	MaxPageSize = 50
)

// sortColumns whitelists the sortable JSON field names and maps them to
// their columns. Anything else falls back to the default sort.
var sortColumns = map[string]string{
	"id":        "id",
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"phone":     "phone",
	"address":   "address",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// PageRequest holds normalized, safe-to-execute pagination parameters.
type PageRequest struct {
	Page       int
	Size       int
	SortColumn string
	SortDesc   bool
}

func (p PageRequest) Offset() int { return p.Page * p.Size }

// OrderBy renders the ORDER BY fragment. SortColumn only ever holds a
// whitelisted column name, never raw caller input.
func (p PageRequest) OrderBy() string {
	dir := "ASC"
	if p.SortDesc {
		dir = "DESC"
	}
	return p.SortColumn + " " + dir
}

// ParsePageRequest normalizes raw query parameters: negative pages clamp
// to 0, size defaults to DefaultPageSize and caps at MaxPageSize, and
// sort accepts "field" or "field,ASC|DESC" with id DESC as the default.
func ParsePageRequest(pageRaw, sizeRaw, sortRaw string) PageRequest {
	pr := PageRequest{
		Page:       0,
		Size:       DefaultPageSize,
		SortColumn: "id",
		SortDesc:   true,
	}

	if n, err := strconv.Atoi(strings.TrimSpace(pageRaw)); err == nil && n > 0 {
		pr.Page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(sizeRaw)); err == nil && n > 0 {
		if n > MaxPageSize {
			n = MaxPageSize
		}
		pr.Size = n
	}

	if s := strings.TrimSpace(sortRaw); s != "" {
		field := s
		dir := ""
		if i := strings.IndexByte(s, ','); i >= 0 {
			field = strings.TrimSpace(s[:i])
			dir = strings.TrimSpace(s[i+1:])
		}
		if col, ok := sortColumns[field]; ok {
			pr.SortColumn = col
			pr.SortDesc = strings.EqualFold(dir, "desc")
		}
	}

	return pr
}

// PageResponse is the paginated result envelope.
type PageResponse struct {
	Content       []CustomerResponse `json:"content"`
	Page          int                `json:"page"`
	Size          int                `json:"size"`
	TotalElements int64              `json:"totalElements"`
	TotalPages    int                `json:"totalPages"`
	First         bool               `json:"first"`
	Last          bool               `json:"last"`
}

func NewPageResponse(customers []Customer, pr PageRequest, total int64) PageResponse {
	totalPages := 0
	if pr.Size > 0 {
		totalPages = int((total + int64(pr.Size) - 1) / int64(pr.Size))
	}
	return PageResponse{
		Content:       ToResponseList(customers),
		Page:          pr.Page,
		Size:          pr.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         pr.Page == 0,
		Last:          pr.Page+1 >= totalPages,
	}
}
