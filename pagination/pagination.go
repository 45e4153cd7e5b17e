// Package pagination slices an ordered query into fixed-size, 1-indexed
// pages. Page numbers past the end clamp to the last page; an empty result
// set yields an empty page with zero total pages.
package pagination

import "gorm.io/gorm"

type Page struct {
	Number     int
	PerPage    int
	TotalItems int64
	TotalPages int
	HasNext    bool
	HasPrev    bool
	NextNumber int
	PrevNumber int
}

// Paginate runs the already-filtered and ordered query twice: once to count,
// once to fetch the requested page into out.
func Paginate(tx *gorm.DB, pageNumber, perPage int, out interface{}) (Page, error) {
	page := Page{Number: 1, PerPage: perPage}
	if err := tx.Session(&gorm.Session{}).Count(&page.TotalItems).Error; err != nil {
		return page, err
	}
	page.TotalPages = int((page.TotalItems + int64(perPage) - 1) / int64(perPage))
	if pageNumber > 1 {
		page.Number = pageNumber
	}
	if page.TotalPages > 0 && page.Number > page.TotalPages {
		page.Number = page.TotalPages
	}
	if page.TotalItems == 0 {
		return page, nil
	}
	err := tx.Offset((page.Number - 1) * perPage).Limit(perPage).Find(out).Error
	if err != nil {
		return page, err
	}
	page.HasPrev = page.Number > 1
	page.HasNext = page.Number < page.TotalPages
	page.PrevNumber = page.Number - 1
	page.NextNumber = page.Number + 1
	return page, nil
}
