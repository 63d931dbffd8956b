package httphandler

import "net/http"

// AllowJSON rejects requests carrying a non-JSON body. Bodyless
// requests (reads, deletes, toggles) pass through untouched.
func AllowJSON(next http.Handler) http.Handler {
	allowJSONFn := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(allowJSONFn)
}
