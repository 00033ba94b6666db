package tab

import "errors"

// ErrRegionSpansStaves indicates a kill, copy, or transpose region
// whose endpoints lie in different staves. Region operations abort
// without mutating anything.
var ErrRegionSpansStaves = errors.New("region spans multiple staves")
