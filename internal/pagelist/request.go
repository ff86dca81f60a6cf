package pagelist

import (
	"net/http"
	"net/url"
	"strconv"
)

// PageNumberFrom looks the page key up across parameter sources in priority
// order. The first source carrying the key wins; its value must parse as a
// positive integer. A missing key or a malformed value falls back to def
// silently: any request must resolve to some valid page rather than fail.
func PageNumberFrom(sources []url.Values, key string, def int) int {
	for _, source := range sources {
		if !source.Has(key) {
			continue
		}
		if n, err := strconv.Atoi(source.Get(key)); err == nil && n > 0 {
			return n
		}
		return def
	}
	return def
}

// PageNumberFromRequest extracts the requested page number from an HTTP
// request, checking query parameters before submitted form data.
func PageNumberFromRequest(r *http.Request, key string, def int) int {
	sources := []url.Values{r.URL.Query()}
	if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
		if r.PostForm == nil {
			_ = r.ParseForm()
		}
		sources = append(sources, r.PostForm)
	}
	return PageNumberFrom(sources, key, def)
}
