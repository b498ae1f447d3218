package solve

import "errors"

// ErrInfeasible is returned when a node's declared channel capacity cannot
// be reconciled with the edges incident to it (spec §4.6).
var ErrInfeasible = errors.New("channel constraints are infeasible")
