package searcher

// Score bounds for the search. WinScore dominates any evaluation; a win found
// with more depth remaining (sooner) scores higher.
const (
	WinScore = 1_000_000
	Infinity = 1_000_000_000
	MaxDepth = 64
)

const DefaultTableSize = 1 << 20
