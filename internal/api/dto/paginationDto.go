package dto

import (
	"net/url"
	"strconv"
)

// Envelope is the collection response shape shared by every list endpoint:
// a total count, absolute next/previous links (null at the edges), and the
// page of results.
type Envelope struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// NewPageEnvelope builds the envelope for page-number pagination
// (?page=N&page_size=M).
func NewPageEnvelope(reqURL *url.URL, count int64, page, pageSize int, results any) *Envelope {
	env := &Envelope{Count: count, Results: results}

	if int64(page*pageSize) < count {
		env.Next = pageLink(reqURL, page+1)
	}
	if page > 1 {
		env.Previous = pageLink(reqURL, page-1)
	}
	return env
}

// NewLimitOffsetEnvelope builds the envelope for limit/offset pagination
// (?limit=N&offset=M).
func NewLimitOffsetEnvelope(reqURL *url.URL, count int64, limit, offset int, results any) *Envelope {
	env := &Envelope{Count: count, Results: results}

	if int64(offset+limit) < count {
		env.Next = offsetLink(reqURL, limit, offset+limit)
	}
	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		env.Previous = offsetLink(reqURL, limit, prev)
	}
	return env
}

func pageLink(reqURL *url.URL, page int) *string {
	u := *reqURL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

func offsetLink(reqURL *url.URL, limit, offset int) *string {
	u := *reqURL
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
