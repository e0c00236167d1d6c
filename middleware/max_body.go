package middleware

import "net/http"

// MaxBody limits the request body to max bytes. Used on the payment proof
// upload route to enforce the 5 MB cap before any parsing happens.
func MaxBody(max int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, max)
			next.ServeHTTP(w, r)
		})
	}
}
