package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/jwtauth/v5"
)

// claimString reads a string claim from the verified access token.
func claimString(r *http.Request, key string) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	v, _ := claims[key].(string)
	return v
}

func currentUserID(r *http.Request) string {
	return claimString(r, "user_id")
}

// queryPtr returns nil for a missing or empty query parameter.
func queryPtr(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}

// pageParams ignores malformed values; the filters apply their own defaults.
func pageParams(r *http.Request) (page, limit int) {
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = l
	}
	return page, limit
}
