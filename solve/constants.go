package solve

// DefaultFlexibleQuantum is the number of pipe instances handed to a
// flexible (unlimited-capacity) peer when the node on the other end is
// also unlimited (spec §4.6). It plays no part when the solving node's
// capacity is fixed: a flexible peer then gets one instance, or an even
// share of the surplus.
//
// The original C source hard-codes this as the literal 5 with no
// explanation (spec.md §9, Open Question). We keep 5 as the default — it
// is large enough that a flexible consumer on a slow producer is unlikely
// to starve for pipe instances, yet small enough that an all-flexible graph
// with many nodes does not allocate an unreasonable number of pipes — but
// name and expose it so a caller can override it (config.Options.FlexibleQuantum).
const DefaultFlexibleQuantum = 5
