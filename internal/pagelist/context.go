package pagelist

import (
	"errors"
	"fmt"
)

// ErrNoPageData reports that render data was asked for its page slice but none
// was stored. This is a programmer error — the handler computed no pagination
// before rendering — and is surfaced immediately rather than guessed around.
var ErrNoPageData = errors.New("pagelist: page data missing from render data")

// PageDataKey is the render-data key under which handlers store the *Page
// consumed by pagination templates.
const PageDataKey = "Page"

// PageFrom pulls the *Page out of template render data.
func PageFrom(data map[string]any, key string) (*Page, error) {
	if key == "" {
		key = PageDataKey
	}
	value, ok := data[key]
	if !ok {
		return nil, fmt.Errorf("%w (key %q)", ErrNoPageData, key)
	}
	page, ok := value.(*Page)
	if !ok || page == nil {
		return nil, fmt.Errorf("%w (key %q holds %T)", ErrNoPageData, key, value)
	}
	return page, nil
}
