package ranking

import "time"

// MaxRarity is the ceiling of the rarity scale.
const MaxRarity = 50

type step struct {
	above int
	score int
}

// voteSteps are checked top down; the first threshold the vote count exceeds
// sets the popularity component.
var voteSteps = []step{
	{2_000_000, 0},
	{1_000_000, 5},
	{500_000, 10},
	{200_000, 15},
	{100_000, 18},
	{50_000, 22},
	{20_000, 26},
}

// ageSteps are checked top down; the first minimum age met sets the age
// component.
var ageSteps = []step{
	{80, 10},
	{60, 7},
	{40, 5},
	{25, 3},
	{15, 1},
}

// Rarity scores how far off the beaten path a film is, 0..50, against the
// current calendar year.
func Rarity(voteCount int, rating float64, year int) int {
	return RarityAt(voteCount, rating, year, time.Now())
}

// RarityAt is Rarity with an explicit clock. The age component moves by at
// most one step when now crosses a year boundary.
func RarityAt(voteCount int, rating float64, year int, now time.Time) int {
	score := 30
	for _, s := range voteSteps {
		if voteCount > s.above {
			score = s.score
			break
		}
	}

	if year > 0 {
		age := now.Year() - year
		for _, s := range ageSteps {
			if age >= s.above {
				score += s.score
				break
			}
		}
	}

	switch {
	case rating >= 8.0 && voteCount < 50_000:
		score += 10
	case rating >= 7.5 && voteCount < 100_000:
		score += 5
	}
	return min(score, MaxRarity)
}
