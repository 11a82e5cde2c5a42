package progress

// DefaultGrowthDays is the streak length the plant needs to become a tree
// when no duration is configured.
const DefaultGrowthDays = 60

type GrowthState int

const (
	Seed GrowthState = iota
	Sprout
	SmallTree
	Tree
)

func (g GrowthState) String() string {
	switch g {
	case Sprout:
		return "sprout"
	case SmallTree:
		return "small_tree"
	case Tree:
		return "tree"
	default:
		return "seed"
	}
}

// Growth splits totalDays into six phases: a streak of one phase makes a
// sprout, three a small tree and five a tree.
func Growth(streak, totalDays int) GrowthState {
	if totalDays <= 0 {
		totalDays = DefaultGrowthDays
	}
	phase := float64(totalDays) / 6
	s := float64(streak)

	switch {
	case s >= 5*phase:
		return Tree
	case s >= 3*phase:
		return SmallTree
	case s >= phase:
		return Sprout
	default:
		return Seed
	}
}

// GrowthProgress is streak/totalDays capped at 1. It does not use the phase
// boundaries of Growth, so a tree can show less than 100%.
func GrowthProgress(streak, totalDays int) float64 {
	if totalDays <= 0 {
		totalDays = DefaultGrowthDays
	}
	if streak <= 0 {
		return 0
	}
	return min(float64(streak)/float64(totalDays), 1)
}
