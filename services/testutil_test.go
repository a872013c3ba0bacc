package services

import (
	"fmt"
	"testing"

	"quizlearn-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database with the full
// schema. MaxOpenConns(1) keeps every query on the same connection so the
// in-memory database is shared.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Learner{},
		&models.Subject{},
		&models.SubjectPoints{},
		&models.Question{},
		&models.ExamPaper{},
		&models.FavoriteQuestion{},
		&models.Result{},
		&models.Badge{},
		&models.LearnerBadge{},
		&models.DailyGoalStreak{},
		&models.DailyUsage{},
		&models.Story{},
		&models.StoryChapter{},
		&models.DeviceToken{},
		&models.NotificationLog{},
	))
	return db
}

func seedLearner(t *testing.T, db *gorm.DB, uid, role string) *models.Learner {
	t.Helper()
	learner := &models.Learner{
		UID:   uid,
		Name:  "Learner " + uid,
		Grade: "10",
		Role:  role,
	}
	require.NoError(t, db.Create(learner).Error)
	return learner
}

func seedSubject(t *testing.T, db *gorm.DB, name string) *models.Subject {
	t.Helper()
	subject := &models.Subject{Name: name, Slug: fmt.Sprintf("slug-%s", name)}
	require.NoError(t, db.Create(subject).Error)
	return subject
}

func seedQuestion(t *testing.T, db *gorm.DB, subjectID uint, answer string) *models.Question {
	t.Helper()
	question := &models.Question{
		SubjectID:   subjectID,
		Text:        "What is the answer?",
		Answer:      answer,
		Explanation: "Because it is.",
	}
	require.NoError(t, db.Create(question).Error)
	return question
}

func seedBadge(t *testing.T, db *gorm.DB, name string) *models.Badge {
	t.Helper()
	badge := &models.Badge{Name: name, Rules: "test rule"}
	require.NoError(t, db.Create(badge).Error)
	return badge
}
