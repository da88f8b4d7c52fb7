package text

// DefaultContextLines is the context radius used for chunk construction when
// the caller does not supply one.
const DefaultContextLines = 3

// maxExactTokens bounds the exact Myers path. Inputs whose combined length
// exceeds it are diffed with the bounded-lookahead heuristic instead, trading
// minimality for predictable cost.
const maxExactTokens = 20000

// resyncWindow is how far ahead the heuristic path searches on each side for
// a resynchronization point after a mismatch.
const resyncWindow = 100
