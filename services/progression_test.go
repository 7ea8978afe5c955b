package services

import (
	"testing"
	"time"

	"github.com/chemquest-app/chemquest_api/shared"
	"github.com/stretchr/testify/assert"
)

func TestRankFor(t *testing.T) {
	tests := []struct {
		xp   int
		want string
	}{
		{0, shared.RankBronze},
		{499, shared.RankBronze},
		{500, shared.RankSilver},
		{1499, shared.RankSilver},
		{1500, shared.RankGold},
		{2999, shared.RankGold},
		{3000, shared.RankPlatinum},
		{4999, shared.RankPlatinum},
		{5000, shared.RankDiamond},
		{100000, shared.RankDiamond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, rankFor(tt.xp), "xp=%d", tt.xp)
	}
}

func TestRankForMonotonic(t *testing.T) {
	order := map[string]int{
		shared.RankBronze:   0,
		shared.RankSilver:   1,
		shared.RankGold:     2,
		shared.RankPlatinum: 3,
		shared.RankDiamond:  4,
	}

	prev := 0
	for xp := 0; xp <= 6000; xp += 25 {
		tier := order[rankFor(xp)]
		assert.GreaterOrEqual(t, tier, prev, "rank regressed at xp=%d", xp)
		prev = tier
	}
}

func TestRankForIdempotent(t *testing.T) {
	assert.Equal(t, rankFor(1234), rankFor(1234))
}

func TestNextStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	hoursAgo := func(h float64) *time.Time {
		ts := now.Add(-time.Duration(h * float64(time.Hour)))
		return &ts
	}

	assert.Equal(t, 5, nextStreak(hoursAgo(1), 5, now), "same-day activity keeps the count")
	assert.Equal(t, 6, nextStreak(hoursAgo(30), 5, now), "next-day activity extends the count")
	assert.Equal(t, 1, nextStreak(hoursAgo(49), 5, now), "lapsed streak resets")

	// Boundaries are inclusive on the extend branch.
	assert.Equal(t, 6, nextStreak(hoursAgo(24), 5, now))
	assert.Equal(t, 6, nextStreak(hoursAgo(48), 5, now))

	assert.Equal(t, 1, nextStreak(nil, 5, now), "no prior activity starts a fresh streak")
	assert.Equal(t, 1, nextStreak(hoursAgo(2), 0, now), "count is clamped to at least 1")
}

func TestStreakMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, streakMultiplier(1))
	assert.Equal(t, 1.0, streakMultiplier(3))
	assert.Equal(t, 1.1, streakMultiplier(4))
	assert.Equal(t, 1.1, streakMultiplier(6))
	assert.Equal(t, 1.2, streakMultiplier(7))
	assert.Equal(t, 1.2, streakMultiplier(30))
}

func TestQuizXP(t *testing.T) {
	assert.Equal(t, 116, quizXP(8, 1.2))
	assert.Equal(t, 100, quizXP(8, 1.0))
	assert.Equal(t, 108, quizXP(8, 1.1))
	assert.Equal(t, 20, quizXP(0, 1.2), "completion bonus applies even with no correct answers")
}

func TestRankProgress(t *testing.T) {
	next, toNext := rankProgress(0)
	assert.Equal(t, shared.RankSilver, next)
	assert.Equal(t, 500, toNext)

	next, toNext = rankProgress(1250)
	assert.Equal(t, shared.RankGold, next)
	assert.Equal(t, 250, toNext)

	next, toNext = rankProgress(4999)
	assert.Equal(t, shared.RankDiamond, next)
	assert.Equal(t, 1, toNext)

	next, toNext = rankProgress(5000)
	assert.Equal(t, "", next, "top tier has no next rank")
	assert.Equal(t, 0, toNext)
}
