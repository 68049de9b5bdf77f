package service

import (
	"math"

	internal_errors "github.com/Lombiq/NGM.Forum/shared/errors"
)

// Pager turns 1-based page numbers into skip/count windows.
type Pager struct {
	PerPage int
	MaxSize int
}

// Page returns the window of the given page. Pages below 1 are clamped to 1;
// pages whose offset does not fit an int are rejected.
func (p Pager) Page(page int) (skip, count int, err error) {
	page = max(1, page)
	if page-1 > math.MaxInt/p.PerPage {
		return 0, 0, &internal_errors.ValidationError{Message: "page out of range"}
	}
	return (page - 1) * p.PerPage, p.PerPage, nil
}

// Window validates an explicit skip/count pair. A zero count means one
// default-sized page.
func (p Pager) Window(skip, count int) (int, int, error) {
	if skip < 0 {
		return 0, 0, &internal_errors.ValidationError{Message: "skip must not be negative"}
	}
	if count < 0 || count > p.MaxSize {
		return 0, 0, &internal_errors.ValidationError{Message: "count out of range"}
	}
	if count == 0 {
		count = p.PerPage
	}
	return skip, count, nil
}

// TotalPages is the number of pages needed for total threads, at least 1.
func (p Pager) TotalPages(total int) int {
	if total <= 0 || p.PerPage <= 0 {
		return 1
	}
	return (total + p.PerPage - 1) / p.PerPage
}
