package ranking

// Tier is the display record for a level.
type Tier struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

var tiers = [...]Tier{
	{1, "The Casual Viewer", "📺", "You watch movies to pass the time.", "#6c757d"},
	{2, "The Popcorn Enthusiast", "🍿", "You enjoy the movie-going experience.", "#fd7e14"},
	{3, "The Avid Watcher", "🎟️", "You have solid taste and watch regularly.", "#20c997"},
	{4, "The Eclectic Explorer", "🌊", "You appreciate variety across genres.", "#0dcaf0"},
	{5, "The Dedicated Cinephile", "🥃", "You dig deeper than most viewers.", "#6f42c1"},
	{6, "The Refined Curator", "🎩", "Your taste is sharp and intentional.", "#d63384"},
	{7, "The Cinema Connoisseur", "🍷", "You have excellent, well-rounded taste.", "#ffc107"},
	{8, "The Elite Cinephile", "🎞️", "Your picks show deep film appreciation.", "#198754"},
	{9, "The Master Curator", "👁️", "You see cinema on another level.", "#dc3545"},
	{10, "The Cinema Deity", "🏆", "Your taste is legendary. Absolute peak.", "#ffd700"},
}

// levelFloors maps a minimum score to its level, highest first.
var levelFloors = []struct {
	min   int
	level int
}{
	{90, 10}, {80, 9}, {70, 8}, {60, 7}, {50, 6},
	{42, 5}, {34, 4}, {26, 3}, {15, 2},
}

// Tiers returns the tier table ordered by level.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers[:])
	return out
}

// TierFor returns the display record of level, clamped to 1..10.
func TierFor(level int) Tier {
	level = min(max(level, 1), len(tiers))
	return tiers[level-1]
}

// LevelFor maps a 0..100 score to its level.
func LevelFor(score int) int {
	for _, f := range levelFloors {
		if score >= f.min {
			return f.level
		}
	}
	return 1
}
