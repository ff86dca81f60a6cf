package pagelist

import (
	"net/url"
	"strconv"
)

// Querystring builds the querystring that links to the given page, preserving
// every unrelated parameter from existing. Keys listed in strip are removed
// first (used for meta parameters such as the one naming which key holds the
// page number). When page equals defaultPage the page key is omitted entirely,
// so the canonical URL of the default page carries no page parameter.
//
// The result starts with "?", or is empty when no parameters remain.
// Parameter order follows url.Values.Encode and is deterministic.
func Querystring(existing url.Values, page int, key string, defaultPage int, strip ...string) string {
	params := make(url.Values, len(existing))
	for k, vs := range existing {
		params[k] = append([]string(nil), vs...)
	}
	for _, k := range strip {
		params.Del(k)
	}

	if page == defaultPage {
		params.Del(key)
	} else {
		params.Set(key, strconv.Itoa(page))
	}

	encoded := params.Encode()
	if encoded == "" {
		return ""
	}
	return "?" + encoded
}
