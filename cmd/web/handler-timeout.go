package main

import (
	"net/http"
	"strings"
	"time"
)

const timeoutPage = `<!doctype html>
<html lang="en">
<head><title>Timeout | Financial Bias Assessment</title></head>
<body>
<h1>That took too long</h1>
<p>Your saved answers are kept. Try again or <a href="/assessment">return to the assessment</a>.</p>
</body>
</html>
`

const timeoutJSON = `{"error":"request timed out"}`

// timeoutHandler responds with 503 Service Unavailable when h misses the deadline. API clients get a JSON error
// and browsers an HTML page.
func timeoutHandler(h http.Handler, serverTimeout time.Duration) http.Handler {
	// Finish before the server's read timeout so the 503 still reaches the client.
	deadline := serverTimeout - 500*time.Millisecond //nolint:mnd // 500ms
	page := http.TimeoutHandler(h, deadline, timeoutPage)
	api := http.TimeoutHandler(h, deadline, timeoutJSON)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			api.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page.ServeHTTP(w, r)
	})
}
