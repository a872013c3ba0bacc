package services

import (
	"testing"
	"time"

	"quizlearn-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAnswerCorrectAwardsPoint(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckAnswerService(db)
	learner := seedLearner(t, db, "u1", models.RoleLearner)
	subject := seedSubject(t, db, "Mathematics Grade 10")
	question := seedQuestion(t, db, subject.ID, `["Paris"]`)

	res, err := svc.CheckAnswer(learner.UID, question.ID, "paris", 12)
	require.NoError(t, err)

	assert.True(t, res.Correct)
	assert.Equal(t, 1, res.Points)
	assert.False(t, res.BonusApplied)
	assert.Equal(t, "Mathematics Grade 10", res.Subject)
	assert.Equal(t, "Because it is.", res.Explanation)

	var result models.Result
	require.NoError(t, db.Where("learner_id = ?", learner.ID).First(&result).Error)
	assert.Equal(t, models.OutcomeCorrect, result.Outcome)
	assert.Equal(t, 12, result.DurationSec)

	var sp models.SubjectPoints
	require.NoError(t, db.Where("learner_id = ? AND subject_id = ?", learner.ID, subject.ID).First(&sp).Error)
	assert.Equal(t, 1, sp.Points)
}

func TestCheckAnswerIncorrectFloorsAtZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckAnswerService(db)
	learner := seedLearner(t, db, "u1", models.RoleLearner)
	subject := seedSubject(t, db, "History")
	question := seedQuestion(t, db, subject.ID, `["1914"]`)

	res, err := svc.CheckAnswer(learner.UID, question.ID, "1939", 30)
	require.NoError(t, err)

	assert.False(t, res.Correct)
	assert.Equal(t, 0, res.Points, "points must not go below zero")

	var result models.Result
	require.NoError(t, db.Where("learner_id = ?", learner.ID).First(&result).Error)
	assert.Equal(t, models.OutcomeIncorrect, result.Outcome)
	assert.Equal(t, 0, result.DurationSec, "duration forced to zero on incorrect")

	var sp models.SubjectPoints
	require.NoError(t, db.Where("learner_id = ?", learner.ID).First(&sp).Error)
	assert.Equal(t, 0, sp.Points, "subject points must not go below zero")
}

func TestCheckAnswerThirdCorrectPaysBonus(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckAnswerService(db)
	learner := seedLearner(t, db, "u1", models.RoleLearner)
	subject := seedSubject(t, db, "Geography")
	question := seedQuestion(t, db, subject.ID, `["delta"]`)

	res1, err := svc.CheckAnswer(learner.UID, question.ID, "delta", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, res1.Points)

	res2, err := svc.CheckAnswer(learner.UID, question.ID, "delta", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, res2.Points)
	assert.False(t, res2.BonusApplied)

	res3, err := svc.CheckAnswer(learner.UID, question.ID, "delta", 5)
	require.NoError(t, err)
	assert.True(t, res3.BonusApplied, "third correct in a row pays the bonus")
	assert.Equal(t, 5, res3.Points)
}

func TestCheckAnswerBonusBrokenByIncorrect(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckAnswerService(db)
	learner := seedLearner(t, db, "u1", models.RoleLearner)
	subject := seedSubject(t, db, "Geography")
	question := seedQuestion(t, db, subject.ID, `["delta"]`)

	_, err := svc.CheckAnswer(learner.UID, question.ID, "delta", 5)
	require.NoError(t, err)
	_, err = svc.CheckAnswer(learner.UID, question.ID, "wrong", 5)
	require.NoError(t, err)
	_, err = svc.CheckAnswer(learner.UID, question.ID, "delta", 5)
	require.NoError(t, err)

	res, err := svc.CheckAnswer(learner.UID, question.ID, "delta", 5)
	require.NoError(t, err)
	assert.False(t, res.BonusApplied, "an incorrect inside the window blocks the bonus")
}

func TestCheckAnswerAdminShortCircuit(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckAnswerService(db)
	subject := seedSubject(t, db, "English")
	question := seedQuestion(t, db, subject.ID, `["noun"]`)

	for _, role := range []string{models.RoleAdmin, models.RoleReviewer} {
		learner := seedLearner(t, db, "staff-"+role, role)

		res, err := svc.CheckAnswer(learner.UID, question.ID, "noun", 3)
		require.NoError(t, err)
		assert.True(t, res.Correct)
		assert.Equal(t, 0, res.Points)

		var count int64
		require.NoError(t, db.Model(&models.Result{}).Where("learner_id = ?", learner.ID).Count(&count).Error)
		assert.Zero(t, count, "no Result row for role %s", role)
	}
}

func TestCheckAnswerFavoritedShortCircuit(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckAnswerService(db)
	learner := seedLearner(t, db, "u1", models.RoleLearner)
	subject := seedSubject(t, db, "English")
	question := seedQuestion(t, db, subject.ID, `["noun"]`)
	require.NoError(t, db.Create(&models.FavoriteQuestion{
		LearnerID:  learner.ID,
		QuestionID: question.ID,
	}).Error)

	res, err := svc.CheckAnswer(learner.UID, question.ID, "noun", 3)
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.True(t, res.Favorited)
	assert.Equal(t, 0, res.Points)

	var count int64
	require.NoError(t, db.Model(&models.Result{}).Count(&count).Error)
	assert.Zero(t, count, "favorited attempts never persist a Result")
}

func TestCheckAnswerStreakSingleIncrementPerDay(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckAnswerService(db)
	learner := seedLearner(t, db, "u1", models.RoleLearner)
	subject := seedSubject(t, db, "Mathematics")
	question := seedQuestion(t, db, subject.ID, `["x"]`)

	var updates int
	for i := 0; i < 10; i++ {
		res, err := svc.CheckAnswer(learner.UID, question.ID, "x", 1)
		require.NoError(t, err)
		if res.StreakUpdated {
			updates++
		}
	}
	assert.Equal(t, 1, updates, "streak extends at most once per day")

	var fresh models.Learner
	require.NoError(t, db.Where("uid = ?", learner.UID).First(&fresh).Error)
	assert.Equal(t, 1, fresh.Streak)
	require.NotNil(t, fresh.StreakLastUpdated)
}

func TestCheckAnswerStreakExtendsOnNewDay(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckAnswerService(db)
	learner := seedLearner(t, db, "u1", models.RoleLearner)
	subject := seedSubject(t, db, "Mathematics")
	question := seedQuestion(t, db, subject.ID, `["x"]`)

	yesterday := time.Now().AddDate(0, 0, -1)
	learner.Streak = 2
	learner.StreakLastUpdated = &yesterday
	require.NoError(t, db.Save(learner).Error)

	var res *CheckAnswerResult
	var err error
	for i := 0; i < 3; i++ {
		res, err = svc.CheckAnswer(learner.UID, question.ID, "x", 1)
		require.NoError(t, err)
	}
	assert.True(t, res.StreakUpdated)
	assert.Equal(t, 3, res.Streak, "third correct of the day extends yesterday's streak")
}

func TestCheckAnswerNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckAnswerService(db)

	_, err := svc.CheckAnswer("ghost", 1, "x", 1)
	assert.ErrorIs(t, err, ErrLearnerNotFound)

	seedLearner(t, db, "u1", models.RoleLearner)
	_, err = svc.CheckAnswer("u1", 999, "x", 1)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}
