package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeRoster(t *testing.T) {
	require.NotEmpty(t, challengeRoster)

	seen := map[string]bool{}
	for _, challenge := range challengeRoster {
		assert.False(t, seen[challenge.ID], "duplicate challenge id %s", challenge.ID)
		seen[challenge.ID] = true

		assert.NotEmpty(t, challenge.Type)
		assert.Greater(t, challenge.Requirement, 0)
		assert.Greater(t, challenge.RewardGems, 0)
	}
}

func TestTodaysChallengeDeterministic(t *testing.T) {
	day := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

	first := todaysChallenge(day)
	second := todaysChallenge(day.Add(5 * time.Hour))

	assert.Equal(t, first.ID, second.ID, "same calendar day must select the same challenge")
}

func TestTodaysChallengeRotation(t *testing.T) {
	n := len(challengeRoster)
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	index := func(ts time.Time) int {
		challenge := todaysChallenge(ts)
		for i, entry := range challengeRoster {
			if entry.ID == challenge.ID {
				return i
			}
		}
		return -1
	}

	base := index(day)
	shifted := index(day.AddDate(0, 0, 5))

	assert.Equal(t, (base+5)%n, shifted, "5 days apart must shift the index by 5 mod N")
}

func TestTodaysChallengeYearBoundary(t *testing.T) {
	n := len(challengeRoster)

	dec31 := time.Date(2026, 12, 31, 12, 0, 0, 0, time.UTC)
	jan1 := time.Date(2027, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, challengeRoster[365%n].ID, todaysChallenge(dec31).ID)
	assert.Equal(t, challengeRoster[1%n].ID, todaysChallenge(jan1).ID, "selection restarts from day 1 after the year wraps")
}

func TestIsCompletedToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)

	sameDay := time.Date(2026, 3, 10, 0, 15, 0, 0, time.UTC)
	previousDay := time.Date(2026, 3, 9, 23, 45, 0, 0, time.UTC)

	assert.True(t, isCompletedToday(&sameDay, now))
	assert.False(t, isCompletedToday(&previousDay, now))
	assert.False(t, isCompletedToday(nil, now))
}
