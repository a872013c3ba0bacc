package services

import (
	"testing"
	"time"

	"quizlearn-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueSMSTransliterates(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	learner := seedLearner(t, db, "u1", models.RoleLearner)

	require.NoError(t, svc.EnqueueSMS(learner.ID, "Ntúla — you’re on a streak!"))

	var n models.NotificationLog
	require.NoError(t, db.First(&n).Error)
	assert.Equal(t, "Ntula -- you're on a streak!", n.Body)
	assert.Equal(t, models.NotificationPending, n.Status)
	assert.Equal(t, "sms", n.Channel)
}

func TestSendDailyGoalReminders(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	svc.now = func() time.Time { return day1 }

	behind := seedLearner(t, db, "behind", models.RoleLearner)
	behind.Phone = "+27820000001"
	require.NoError(t, db.Save(behind).Error)

	done := seedLearner(t, db, "done", models.RoleLearner)
	done.Phone = "+27820000002"
	require.NoError(t, db.Save(done).Error)
	metAt := day1.Add(-time.Hour)
	require.NoError(t, db.Create(&models.DailyGoalStreak{
		LearnerID:      done.ID,
		CurrentStreak:  1,
		QuestionsToday: models.DailyGoalQuestions,
		LastAnsweredAt: &metAt,
		LastQuotaMetAt: &metAt,
	}).Error)

	// No phone number: nothing to send.
	seedLearner(t, db, "no-phone", models.RoleLearner)

	svc.SendDailyGoalReminders()

	var queued []models.NotificationLog
	require.NoError(t, db.Find(&queued).Error)
	require.Len(t, queued, 1, "only the learner behind on the quota gets a reminder")
	assert.Equal(t, behind.ID, queued[0].LearnerID)
	assert.Equal(t, "sms", queued[0].Channel)
}

func TestRegisterDeviceUpserts(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	a := seedLearner(t, db, "a", models.RoleLearner)
	b := seedLearner(t, db, "b", models.RoleLearner)

	require.NoError(t, svc.RegisterDevice(a.ID, "tok-1", "android"))
	require.NoError(t, svc.RegisterDevice(b.ID, "tok-1", "android"))

	var tokens []models.DeviceToken
	require.NoError(t, db.Find(&tokens).Error)
	require.Len(t, tokens, 1, "a token moves between accounts instead of duplicating")
	assert.Equal(t, b.ID, tokens[0].LearnerID)
}
