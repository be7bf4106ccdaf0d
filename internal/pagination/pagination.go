// Package pagination implements the shared offset/limit policy and the
// cursor envelope returned by every list endpoint.
package pagination

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is used when the client sends no limit.
	DefaultLimit = 10
	// MaxLimit caps the page size for every list endpoint.
	MaxLimit = 10
)

// Params holds a sanitized limit/offset pair.
type Params struct {
	Limit  int
	Offset int
}

// Envelope is the pagination block attached to list responses. NextPage
// and PrevPage are full request URLs, or null at the respective edge.
type Envelope struct {
	TotalCount int     `json:"totalCount"`
	ItemsCount int     `json:"itemsCount"`
	NextPage   *string `json:"nextPage"`
	PrevPage   *string `json:"prevPage"`
}

// Sanitize clamps raw query values into policy: limit in [1, MaxLimit]
// with DefaultLimit fallback, offset >= 0. Out-of-range values are
// corrected, never rejected.
func Sanitize(limit, offset int) Params {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Params{Limit: limit, Offset: offset}
}

// ClampOffset bounds the offset by the live total so a stale cursor lands
// on an empty final page instead of an error.
func (p Params) ClampOffset(totalCount int) Params {
	if p.Offset > totalCount {
		p.Offset = totalCount
	}
	return p
}

// BuildEnvelope computes the response envelope for a served page.
// nextPage is present iff offset+limit < totalCount; prevPage iff
// offset > 0, pointing at max(0, offset-limit). baseURL is the request
// path; query carries the remaining request parameters to preserve.
func BuildEnvelope(p Params, totalCount, itemsCount int, baseURL string, query url.Values) Envelope {
	env := Envelope{
		TotalCount: totalCount,
		ItemsCount: itemsCount,
	}

	if p.Offset+p.Limit < totalCount {
		env.NextPage = pageURL(baseURL, query, p.Limit, p.Offset+p.Limit)
	}
	if p.Offset > 0 {
		prev := p.Offset - p.Limit
		if prev < 0 {
			prev = 0
		}
		env.PrevPage = pageURL(baseURL, query, p.Limit, prev)
	}

	return env
}

func pageURL(baseURL string, query url.Values, limit, offset int) *string {
	q := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	u := fmt.Sprintf("%s?%s", baseURL, q.Encode())
	return &u
}
