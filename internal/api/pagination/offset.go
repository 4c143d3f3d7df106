package pagination

import (
	"errors"
	"net/url"
	"strconv"
)

var ErrInvalidPage = errors.New("invalid pagination parameters")

const (
	DefaultFrom = 0
	DefaultSize = 10
	MaxSize     = 1000
)

// Page is an offset window over a listing: skip From items, return Size.
type Page struct {
	From int
	Size int
}

// Parse reads the from/size query parameters, applying defaults when they
// are absent.
func Parse(values url.Values) (Page, error) {
	page := Page{From: DefaultFrom, Size: DefaultSize}

	if raw := values.Get("from"); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			return Page{}, ErrInvalidPage
		}
		page.From = from
	}

	if raw := values.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 || size > MaxSize {
			return Page{}, ErrInvalidPage
		}
		page.Size = size
	}

	return page, nil
}
