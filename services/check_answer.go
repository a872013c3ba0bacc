package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"quizlearn-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scoring constants.
const (
	pointsCorrect      = 1
	pointsCorrectBonus = 3
	pointsIncorrect    = -1

	// answerStreakQuota correct answers in one day extend Learner.Streak.
	answerStreakQuota = 3
)

// CheckAnswerResult is the full payload returned to the HTTP layer after an
// answer attempt.
type CheckAnswerResult struct {
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation"`
	CorrectAnswer string `json:"correct_answer"`
	Points        int    `json:"points"`
	BonusApplied  bool   `json:"bonus_applied"`
	Streak        int    `json:"streak"`
	StreakUpdated bool   `json:"streak_updated"`
	Subject       string `json:"subject"`
	Favorited     bool   `json:"favorited"`
}

// CheckAnswerService evaluates answer attempts and applies all gamification
// state in a single transaction: the Result row, learner points, the
// per-subject ledger and the correct-answer streak.
type CheckAnswerService struct {
	DB *gorm.DB

	// now is swapped in tests to pin day boundaries.
	now func() time.Time
}

func NewCheckAnswerService(db *gorm.DB) *CheckAnswerService {
	return &CheckAnswerService{DB: db, now: time.Now}
}

// CheckAnswer evaluates rawAnswer for the given learner and question.
// Attempts by admins/reviewers and attempts against favorited questions are
// evaluated but never persisted and never move points or streaks.
func (s *CheckAnswerService) CheckAnswer(learnerUID string, questionID uint, rawAnswer string, durationSec int) (*CheckAnswerResult, error) {
	var learner models.Learner
	if err := s.DB.Where("uid = ?", learnerUID).First(&learner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLearnerNotFound
		}
		return nil, fmt.Errorf("error checking answer: %w", err)
	}

	var question models.Question
	if err := s.DB.Preload("Subject").First(&question, questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error checking answer: %w", err)
	}

	var favorited int64
	if err := s.DB.Model(&models.FavoriteQuestion{}).
		Where("learner_id = ? AND question_id = ?", learner.ID, question.ID).
		Count(&favorited).Error; err != nil {
		return nil, fmt.Errorf("error checking answer: %w", err)
	}

	correct := IsAnswerCorrect(rawAnswer, question.Answer)

	res := &CheckAnswerResult{
		Correct:       correct,
		Explanation:   question.Explanation,
		CorrectAnswer: correctAnswerText(question.Answer),
		Points:        learner.Points,
		Streak:        learner.Streak,
		Favorited:     favorited > 0,
	}
	if question.Subject != nil {
		res.Subject = question.Subject.Name
	}

	// Admins and reviewers answer for QA; favorited questions are revision
	// material. Both paths return the evaluation without touching state.
	if learner.Role != models.RoleLearner || favorited > 0 {
		return res, nil
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Row lock serializes concurrent attempts by the same learner so the
		// last-three read, the streak guard and the ledger upsert cannot race.
		var locked models.Learner
		if err := lockForUpdate(tx).
			Where("uid = ?", learnerUID).First(&locked).Error; err != nil {
			return err
		}

		outcome := models.OutcomeIncorrect
		duration := 0
		if correct {
			outcome = models.OutcomeCorrect
			duration = durationSec
		}
		result := models.Result{
			LearnerID:   locked.ID,
			QuestionID:  question.ID,
			Outcome:     outcome,
			DurationSec: duration,
		}
		if err := tx.Create(&result).Error; err != nil {
			return err
		}

		// The freshly inserted row is part of the window on purpose: three
		// correct answers in a row pay the bonus on the third.
		var lastThree []models.Result
		if err := tx.Where("learner_id = ?", locked.ID).
			Order("created_at DESC, id DESC").
			Limit(3).
			Find(&lastThree).Error; err != nil {
			return err
		}
		allCorrect := len(lastThree) == 3
		for _, r := range lastThree {
			if r.Outcome != models.OutcomeCorrect {
				allCorrect = false
			}
		}

		delta := pointsIncorrect
		if correct {
			if allCorrect {
				delta = pointsCorrectBonus
				res.BonusApplied = true
			} else {
				delta = pointsCorrect
			}
		}

		locked.Points += delta
		if locked.Points < 0 {
			locked.Points = 0
		}

		if err := s.applySubjectPoints(tx, locked.ID, question.SubjectID, delta); err != nil {
			return err
		}

		if correct {
			updated, err := s.extendAnswerStreak(tx, &locked)
			if err != nil {
				return err
			}
			res.StreakUpdated = updated
		}

		if err := tx.Save(&locked).Error; err != nil {
			return err
		}

		res.Points = locked.Points
		res.Streak = locked.Streak
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error checking answer: %w", err)
	}
	return res, nil
}

// applySubjectPoints lazily creates the (learner, subject) ledger row and
// applies delta, floored at 0.
func (s *CheckAnswerService) applySubjectPoints(tx *gorm.DB, learnerID string, subjectID uint, delta int) error {
	var sp models.SubjectPoints
	if err := tx.Where(models.SubjectPoints{LearnerID: learnerID, SubjectID: subjectID}).
		FirstOrCreate(&sp).Error; err != nil {
		return err
	}
	sp.Points += delta
	if sp.Points < 0 {
		sp.Points = 0
	}
	return tx.Save(&sp).Error
}

// extendAnswerStreak bumps Learner.Streak the first time today's correct
// answers reach the quota. At most one increment per calendar day.
func (s *CheckAnswerService) extendAnswerStreak(tx *gorm.DB, learner *models.Learner) (bool, error) {
	now := s.now()
	if learner.StreakLastUpdated != nil && sameDay(*learner.StreakLastUpdated, now) {
		return false, nil
	}

	var correctToday int64
	if err := tx.Model(&models.Result{}).
		Where("learner_id = ? AND outcome = ? AND created_at >= ?",
			learner.ID, models.OutcomeCorrect, startOfDay(now)).
		Count(&correctToday).Error; err != nil {
		return false, err
	}
	if correctToday < answerStreakQuota {
		return false, nil
	}

	learner.Streak++
	learner.StreakLastUpdated = &now
	return true, nil
}

// lockForUpdate takes a row lock on Postgres. SQLite (tests) has a single
// writer at the database level, and its parser rejects FOR UPDATE.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// correctAnswerText renders the stored answer field for display, showing all
// accepted alternatives.
func correctAnswerText(stored string) string {
	return strings.Join(answerCandidates(stored), " | ")
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
