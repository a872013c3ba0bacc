package services

import (
	"testing"
	"time"

	"quizlearn-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day1 = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func trackN(t *testing.T, svc *LearnerStreakService, uid string, n int) *StreakInfo {
	t.Helper()
	var info *StreakInfo
	var err error
	for i := 0; i < n; i++ {
		info, err = svc.TrackQuestionAnswered(uid)
		require.NoError(t, err)
	}
	return info
}

func TestDailyGoalQuotaExtendsStreak(t *testing.T) {
	db := newTestDB(t)
	svc := NewLearnerStreakService(db)
	svc.now = func() time.Time { return day1 }
	seedLearner(t, db, "u1", models.RoleLearner)

	info := trackN(t, svc, "u1", 4)
	assert.Equal(t, 0, info.CurrentStreak)
	assert.Equal(t, 4, info.QuestionsAnsweredToday)
	assert.Equal(t, 1, info.QuestionsNeededToday)
	assert.False(t, info.StreakMaintained)

	info = trackN(t, svc, "u1", 1)
	assert.Equal(t, 1, info.CurrentStreak, "fifth question of the day meets the quota")
	assert.Equal(t, 0, info.QuestionsNeededToday)
	assert.True(t, info.StreakMaintained)

	// Extra questions past the quota change nothing.
	info = trackN(t, svc, "u1", 3)
	assert.Equal(t, 1, info.CurrentStreak)
	assert.Equal(t, 1, info.LongestStreak)
}

func TestDailyGoalConsecutiveDays(t *testing.T) {
	db := newTestDB(t)
	svc := NewLearnerStreakService(db)
	seedLearner(t, db, "u1", models.RoleLearner)

	svc.now = func() time.Time { return day1 }
	trackN(t, svc, "u1", 5)

	svc.now = func() time.Time { return day1.AddDate(0, 0, 1) }
	info := trackN(t, svc, "u1", 5)

	assert.Equal(t, 2, info.CurrentStreak)
	assert.Equal(t, 2, info.LongestStreak)
}

func TestDailyGoalMissedDayResets(t *testing.T) {
	db := newTestDB(t)
	svc := NewLearnerStreakService(db)
	seedLearner(t, db, "u1", models.RoleLearner)

	svc.now = func() time.Time { return day1 }
	trackN(t, svc, "u1", 5)

	// Two days later: yesterday's quota was missed.
	svc.now = func() time.Time { return day1.AddDate(0, 0, 2) }
	info := trackN(t, svc, "u1", 1)
	assert.Equal(t, 0, info.CurrentStreak, "a missed day resets the streak")
	assert.Equal(t, 1, info.QuestionsAnsweredToday)

	info = trackN(t, svc, "u1", 4)
	assert.Equal(t, 1, info.CurrentStreak, "meeting today's quota starts over at one")
	assert.Equal(t, 1, info.LongestStreak, "longest streak survives the reset")
}

func TestGetStreakInfoReadOnlyView(t *testing.T) {
	db := newTestDB(t)
	svc := NewLearnerStreakService(db)
	seedLearner(t, db, "u1", models.RoleLearner)

	svc.now = func() time.Time { return day1 }
	trackN(t, svc, "u1", 5)

	// Next day, before any answer: counters roll, streak still alive.
	svc.now = func() time.Time { return day1.AddDate(0, 0, 1) }
	info, err := svc.GetStreakInfo("u1")
	require.NoError(t, err)
	assert.Equal(t, 1, info.CurrentStreak)
	assert.Equal(t, 0, info.QuestionsAnsweredToday)
	assert.Equal(t, models.DailyGoalQuestions, info.QuestionsNeededToday)
	assert.False(t, info.StreakMaintained)

	// Two days after the last quota: reads as zero without a write.
	svc.now = func() time.Time { return day1.AddDate(0, 0, 2) }
	info, err = svc.GetStreakInfo("u1")
	require.NoError(t, err)
	assert.Equal(t, 0, info.CurrentStreak)

	var row models.DailyGoalStreak
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, 1, row.CurrentStreak, "the read path never mutates the row")
}

func TestGetStreakInfoUnknownLearner(t *testing.T) {
	db := newTestDB(t)
	svc := NewLearnerStreakService(db)
	_ = db

	_, err := svc.GetStreakInfo("ghost")
	assert.ErrorIs(t, err, ErrLearnerNotFound)
}

func TestGetStreakInfoNoActivity(t *testing.T) {
	db := newTestDB(t)
	svc := NewLearnerStreakService(db)
	seedLearner(t, db, "u1", models.RoleLearner)

	info, err := svc.GetStreakInfo("u1")
	require.NoError(t, err)
	assert.Equal(t, 0, info.CurrentStreak)
	assert.Equal(t, models.DailyGoalQuestions, info.QuestionsNeededToday)
}
