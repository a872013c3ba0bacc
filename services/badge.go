package services

import (
	"errors"
	"fmt"
	"log"

	"quizlearn-backend/models"

	"gorm.io/gorm"
)

// Subject mastery thresholds: at least this many attempts in matching
// subjects, at least this correct rate.
const (
	masteryMinAnswered = 50
	masteryMinRate     = 0.8
)

// Streak and consecutive-run badge thresholds. Every threshold is checked on
// every call, so a learner arriving at streak 30 collects all three at once.
var streakBadges = []struct {
	Days int
	Name string
}{
	{3, "3-Day Streak"},
	{7, "7-Day Streak"},
	{30, "30-Day Streak"},
}

var runBadges = []struct {
	Length int
	Name   string
}{
	{3, "3 in a row"},
	{5, "5 in a row"},
	{10, "10 in a row"},
}

// gradeLeaderBadge goes to the learner with the strictly highest points in
// their grade.
const gradeLeaderBadge = "All Time Goat"

// NotificationSink delivers a badge-grant event to the learner. Failures are
// logged and never roll back the grant.
type NotificationSink interface {
	SendBadgeNotification(learner *models.Learner, badgeName string) error
}

// BadgeService re-scans a learner's aggregate statistics against the rule
// table and grants whatever is missing. Idempotent: the (learner, badge)
// existence check makes re-runs free.
type BadgeService struct {
	DB           *gorm.DB
	masteryRules []models.SubjectMasteryRule
	notifier     NotificationSink
}

func NewBadgeService(db *gorm.DB, masteryRules []models.SubjectMasteryRule, notifier NotificationSink) *BadgeService {
	return &BadgeService{DB: db, masteryRules: masteryRules, notifier: notifier}
}

// CheckAndAssignBadges evaluates every rule group for the learner and returns
// the badges granted by this call. Grants committed before an error stay
// committed.
func (s *BadgeService) CheckAndAssignBadges(learner *models.Learner) ([]models.Badge, error) {
	var granted []models.Badge

	award := func(name string) error {
		badge, ok, err := s.grantIfMissing(learner, name)
		if err != nil {
			return err
		}
		if ok {
			granted = append(granted, badge)
		}
		return nil
	}

	for _, rule := range s.masteryRules {
		qualified, err := s.subjectMastery(learner.ID, rule.SubjectMatch)
		if err != nil {
			return granted, fmt.Errorf("badge evaluation: %w", err)
		}
		if qualified {
			if err := award(rule.BadgeName); err != nil {
				return granted, err
			}
		}
	}

	leader, err := s.isGradeLeader(learner)
	if err != nil {
		return granted, fmt.Errorf("badge evaluation: %w", err)
	}
	if leader {
		if err := award(gradeLeaderBadge); err != nil {
			return granted, err
		}
	}

	for _, sb := range streakBadges {
		if learner.Streak >= sb.Days {
			if err := award(sb.Name); err != nil {
				return granted, err
			}
		}
	}

	run, err := s.consecutiveCorrectRun(learner.ID)
	if err != nil {
		return granted, fmt.Errorf("badge evaluation: %w", err)
	}
	for _, rb := range runBadges {
		if run >= rb.Length {
			if err := award(rb.Name); err != nil {
				return granted, err
			}
		}
	}

	return granted, nil
}

// CheckAndAssignBadgesToAllLearners sweeps every learner sequentially. A
// single learner's failure is logged and does not abort the batch.
func (s *BadgeService) CheckAndAssignBadgesToAllLearners() {
	var learners []models.Learner
	if err := s.DB.Where("role = ?", models.RoleLearner).Find(&learners).Error; err != nil {
		log.Printf("[badges] failed to list learners for sweep: %v", err)
		return
	}
	for i := range learners {
		if _, err := s.CheckAndAssignBadges(&learners[i]); err != nil {
			log.Printf("[badges] sweep failed for learner %s: %v", learners[i].UID, err)
		}
	}
}

// subjectMastery reports whether the learner has enough volume and accuracy
// in subjects whose name contains match.
func (s *BadgeService) subjectMastery(learnerID, match string) (bool, error) {
	var stats struct {
		Total   int64
		Correct int64
	}
	err := s.DB.Raw(`
		SELECT COUNT(*) AS total,
		       SUM(CASE WHEN r.outcome = 'correct' THEN 1 ELSE 0 END) AS correct
		FROM results r
		INNER JOIN questions q ON q.id = r.question_id
		INNER JOIN subjects sub ON sub.id = q.subject_id
		WHERE r.learner_id = ? AND sub.name LIKE ?
	`, learnerID, "%"+match+"%").Scan(&stats).Error
	if err != nil {
		return false, err
	}
	if stats.Total < masteryMinAnswered {
		return false, nil
	}
	return float64(stats.Correct) >= masteryMinRate*float64(stats.Total), nil
}

// isGradeLeader: strictly highest points (>0) among role-learner peers in the
// same grade.
func (s *BadgeService) isGradeLeader(learner *models.Learner) (bool, error) {
	if learner.Points <= 0 {
		return false, nil
	}
	var peers int64
	err := s.DB.Model(&models.Learner{}).
		Where("grade = ? AND role = ? AND id <> ? AND points >= ?",
			learner.Grade, models.RoleLearner, learner.ID, learner.Points).
		Count(&peers).Error
	if err != nil {
		return false, err
	}
	return peers == 0, nil
}

// consecutiveCorrectRun counts correct outcomes scanning newest-first,
// stopping at the first incorrect. Capped at the largest run threshold.
func (s *BadgeService) consecutiveCorrectRun(learnerID string) (int, error) {
	maxLen := runBadges[len(runBadges)-1].Length
	var recent []models.Result
	err := s.DB.Where("learner_id = ?", learnerID).
		Order("created_at DESC, id DESC").
		Limit(maxLen).
		Find(&recent).Error
	if err != nil {
		return 0, err
	}
	run := 0
	for _, r := range recent {
		if r.Outcome != models.OutcomeCorrect {
			break
		}
		run++
	}
	return run, nil
}

// LeaderboardEntry is one row of the grade leaderboard.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UID    string `json:"uid"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// GradeLeaderboard ranks role-learner accounts in the grade by points. The
// same ordering backs the grade-leader badge.
func (s *BadgeService) GradeLeaderboard(grade string, limit int) ([]LeaderboardEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var learners []models.Learner
	err := s.DB.Where("grade = ? AND role = ?", grade, models.RoleLearner).
		Order("points DESC, created_at ASC").
		Limit(limit).
		Find(&learners).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(learners))
	for i, l := range learners {
		entries = append(entries, LeaderboardEntry{
			Rank:   i + 1,
			UID:    l.UID,
			Name:   l.Name,
			Points: l.Points,
		})
	}
	return entries, nil
}

// grantIfMissing inserts the LearnerBadge row unless already held, then
// notifies. A rule naming an unseeded badge is a content problem, not a
// learner problem: logged and skipped.
func (s *BadgeService) grantIfMissing(learner *models.Learner, badgeName string) (models.Badge, bool, error) {
	var badge models.Badge
	if err := s.DB.Where("name = ?", badgeName).First(&badge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[badges] badge %q not seeded, skipping", badgeName)
			return models.Badge{}, false, nil
		}
		return models.Badge{}, false, err
	}

	var held int64
	if err := s.DB.Model(&models.LearnerBadge{}).
		Where("learner_id = ? AND badge_id = ?", learner.ID, badge.ID).
		Count(&held).Error; err != nil {
		return models.Badge{}, false, err
	}
	if held > 0 {
		return models.Badge{}, false, nil
	}

	lb := models.LearnerBadge{LearnerID: learner.ID, BadgeID: badge.ID}
	if err := s.DB.Create(&lb).Error; err != nil {
		return models.Badge{}, false, err
	}

	if s.notifier != nil {
		if err := s.notifier.SendBadgeNotification(learner, badge.Name); err != nil {
			log.Printf("[badges] notification for %q to %s failed: %v", badge.Name, learner.UID, err)
		}
	}
	return badge, true, nil
}
