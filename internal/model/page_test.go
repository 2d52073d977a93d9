package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageRequest_Defaults(t *testing.T) {
	pr := ParsePageRequest("", "", "")

	assert.Equal(t, 0, pr.Page)
	assert.Equal(t, DefaultPageSize, pr.Size)
	assert.Equal(t, "id", pr.SortColumn)
	assert.True(t, pr.SortDesc)
	assert.Equal(t, "id DESC", pr.OrderBy())
}

func TestParsePageRequest_SizeCappedAt50(t *testing.T) {
	pr := ParsePageRequest("0", "999", "")
	assert.Equal(t, MaxPageSize, pr.Size)

	pr = ParsePageRequest("0", "50", "")
	assert.Equal(t, 50, pr.Size)

	pr = ParsePageRequest("0", "10", "")
	assert.Equal(t, 10, pr.Size)
}

func TestParsePageRequest_InvalidNumbersFallBack(t *testing.T) {
	pr := ParsePageRequest("-3", "abc", "")
	assert.Equal(t, 0, pr.Page)
	assert.Equal(t, DefaultPageSize, pr.Size)

	pr = ParsePageRequest("2", "0", "")
	assert.Equal(t, 2, pr.Page)
	assert.Equal(t, DefaultPageSize, pr.Size)
}

func TestParsePageRequest_Sort(t *testing.T) {
	pr := ParsePageRequest("", "", "lastName,DESC")
	assert.Equal(t, "last_name", pr.SortColumn)
	assert.True(t, pr.SortDesc)

	pr = ParsePageRequest("", "", "email")
	assert.Equal(t, "email", pr.SortColumn)
	assert.False(t, pr.SortDesc)

	pr = ParsePageRequest("", "", "firstName,asc")
	assert.Equal(t, "first_name", pr.SortColumn)
	assert.False(t, pr.SortDesc)

	// unknown fields fall back to the default, never reach SQL
	pr = ParsePageRequest("", "", "robert'); DROP TABLE customers;--,DESC")
	assert.Equal(t, "id", pr.SortColumn)
	assert.True(t, pr.SortDesc)
}

func TestParsePageRequest_Offset(t *testing.T) {
	pr := ParsePageRequest("3", "10", "")
	assert.Equal(t, 30, pr.Offset())
}

func TestNewPageResponse_Metadata(t *testing.T) {
	customers := []Customer{{ID: 1}, {ID: 2}}

	resp := NewPageResponse(customers, PageRequest{Page: 0, Size: 2}, 5)
	assert.Len(t, resp.Content, 2)
	assert.Equal(t, 0, resp.Page)
	assert.Equal(t, 2, resp.Size)
	assert.Equal(t, int64(5), resp.TotalElements)
	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.First)
	assert.False(t, resp.Last)

	resp = NewPageResponse(customers, PageRequest{Page: 2, Size: 2}, 5)
	assert.False(t, resp.First)
	assert.True(t, resp.Last)
}

func TestNewPageResponse_Empty(t *testing.T) {
	resp := NewPageResponse(nil, PageRequest{Page: 0, Size: 20}, 0)

	assert.NotNil(t, resp.Content)
	assert.Empty(t, resp.Content)
	assert.Equal(t, int64(0), resp.TotalElements)
	assert.Equal(t, 0, resp.TotalPages)
	assert.True(t, resp.First)
	assert.True(t, resp.Last)
}
