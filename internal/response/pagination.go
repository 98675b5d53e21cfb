package response

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Links struct {
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

type Page[T any] struct {
	Links       Links `json:"links"`
	Count       int   `json:"count"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	Results     []T   `json:"results"`
}

// PageParams reads page and page_size. Invalid or non-positive sizes fall
// back to the default; sizes above the maximum are capped.
func PageParams(c *gin.Context) (page, size int) {
	size = DefaultPageSize
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 {
		size = min(v, MaxPageSize)
	}
	page = 1
	if raw := c.Query("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return 0, size
		}
		page = v
	}
	return page, size
}

// Paginate slices items into the requested page. ok is false when the page
// does not exist. An empty result set still has one page.
func Paginate[T any](c *gin.Context, items []T) (Page[T], bool) {
	page, size := PageParams(c)

	total := (len(items) + size - 1) / size
	if total == 0 {
		total = 1
	}
	if page < 1 || page > total {
		return Page[T]{}, false
	}

	lo := (page - 1) * size
	hi := min(lo+size, len(items))
	results := items[lo:hi]
	if results == nil {
		results = []T{}
	}

	p := Page[T]{
		Count:       len(items),
		CurrentPage: page,
		TotalPages:  total,
		Results:     results,
	}
	if page < total {
		next := pageURL(c.Request, page+1)
		p.Links.Next = &next
	}
	if page > 1 {
		prev := pageURL(c.Request, page-1)
		p.Links.Previous = &prev
	}
	return p, true
}

// RespondPage paginates items and writes the page in a SUCCESS envelope.
func RespondPage[T any](c *gin.Context, items []T) {
	p, ok := Paginate(c, items)
	if !ok {
		Fail(c, http.StatusNotFound, "invalid_page", "invalid page")
		return
	}
	Success(c, http.StatusOK, "", p)
}

// pageURL builds an absolute link to page. The first page drops the
// parameter.
func pageURL(r *http.Request, page int) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	q := r.URL.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: q.Encode()}
	return u.String()
}
