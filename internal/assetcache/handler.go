package assetcache

import (
	"net/http"
	"strconv"
)

// Handler serves GET requests from the cache and passes everything else,
// including misses, to next.
func (c *Cache) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}
		resp, ok, err := c.Match(r.Context(), r.URL.Path)
		if err != nil || !ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("X-Plano-Cache", "hit")
		writeResponse(w, r, resp)
	})
}

// FetcherHandler serves requests straight from f without caching.
func FetcherHandler(f Fetcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, err := f.Fetch(r.Context(), r.URL.Path)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		w.Header().Set("X-Plano-Cache", "miss")
		writeResponse(w, r, resp)
	})
}

func writeResponse(w http.ResponseWriter, r *http.Request, resp Response) {
	for k, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(k, v)
		}
	}
	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.Body)))
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(resp.Body)
	}
}
