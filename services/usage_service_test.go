package services

import (
	"testing"
	"time"

	"quizlearn-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageAdGate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUsageService(db)
	svc.now = func() time.Time { return day1 }
	seedLearner(t, db, "u1", models.RoleLearner)

	var status *UsageStatus
	var err error
	for i := 0; i < models.AdGateInterval; i++ {
		status, err = svc.TrackQuestion("u1")
		require.NoError(t, err)
	}
	assert.True(t, status.AdRequired, "the gate closes after a full block of questions")

	status, err = svc.TrackAdWatched("u1")
	require.NoError(t, err)
	assert.False(t, status.AdRequired, "a rewarded ad unlocks the next block")
	assert.Equal(t, 1, status.AdsWatched)
}

func TestUsageCountersRollDaily(t *testing.T) {
	db := newTestDB(t)
	svc := NewUsageService(db)
	svc.now = func() time.Time { return day1 }
	seedLearner(t, db, "u1", models.RoleLearner)

	_, err := svc.TrackQuestion("u1")
	require.NoError(t, err)

	svc.now = func() time.Time { return day1.AddDate(0, 0, 1) }
	status, err := svc.GetStatus("u1")
	require.NoError(t, err)
	assert.Zero(t, status.QuestionsAnswered, "a new day starts a fresh row")

	var rows int64
	require.NoError(t, db.Model(&models.DailyUsage{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestUsageUnknownLearner(t *testing.T) {
	db := newTestDB(t)
	svc := NewUsageService(db)
	_ = db

	_, err := svc.TrackQuestion("ghost")
	assert.ErrorIs(t, err, ErrLearnerNotFound)
}
