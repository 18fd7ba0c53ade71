package anchor

import "errors"

// ErrNoPOIs indicates Build was called with an empty, post-filter POI set.
var ErrNoPOIs = errors.New("anchor: no anchorable POIs after filtering")
