package helpers

import (
	"net/http"
	"time"
)

// ParseAfter reads the after watermark from the query string as RFC3339 (or
// RFC3339Nano). ok is false when the parameter is absent; err is non-nil
// when it is present but unparseable.
func ParseAfter(r *http.Request) (t time.Time, ok bool, err error) {
	s := r.URL.Query().Get("after")
	if s == "" {
		return time.Time{}, false, nil
	}
	t, err = time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
