package services

import (
	"errors"
	"fmt"

	"quizlearn-backend/models"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var titleCaser = cases.Title(language.English)

// QuestionService covers the admin content flows: subjects, questions and
// exam papers.
type QuestionService struct {
	DB *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{DB: db}
}

// CreateSubject title-cases the name and derives a stable slug.
func (s *QuestionService) CreateSubject(name, grade string) (*models.Subject, error) {
	subject := models.Subject{
		Name:  titleCaser.String(name),
		Grade: grade,
	}
	subject.Slug = slug.Make(subject.Name + " " + grade)
	if err := s.DB.Create(&subject).Error; err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}
	return &subject, nil
}

func (s *QuestionService) ListSubjects() ([]models.Subject, error) {
	var subjects []models.Subject
	err := s.DB.Order("name ASC").Find(&subjects).Error
	return subjects, err
}

func (s *QuestionService) GetSubject(id uint) (*models.Subject, error) {
	var subject models.Subject
	if err := s.DB.First(&subject, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return &subject, nil
}

// CreateQuestion validates the subject reference before insert. The answer
// field is stored verbatim; normalization happens at evaluation time only.
func (s *QuestionService) CreateQuestion(q *models.Question) error {
	if _, err := s.GetSubject(q.SubjectID); err != nil {
		return err
	}
	return s.DB.Create(q).Error
}

func (s *QuestionService) UpdateQuestion(id uint, updates *models.Question) (*models.Question, error) {
	var question models.Question
	if err := s.DB.First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	question.Text = updates.Text
	question.Answer = updates.Answer
	question.Explanation = updates.Explanation
	if updates.SubjectID != 0 {
		question.SubjectID = updates.SubjectID
	}
	question.ExamPaperID = updates.ExamPaperID
	if err := s.DB.Save(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuestionService) DeleteQuestion(id uint) error {
	res := s.DB.Delete(&models.Question{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

// ListQuestions pages through a subject's questions, newest first.
func (s *QuestionService) ListQuestions(subjectID uint, page, size int) ([]models.Question, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	q := s.DB.Model(&models.Question{})
	if subjectID != 0 {
		q = q.Where("subject_id = ?", subjectID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []models.Question
	err := q.Preload("Subject").
		Order("created_at DESC").
		Limit(size).Offset((page - 1) * size).
		Find(&questions).Error
	return questions, total, err
}

// FavoriteQuestion marks a question for revision. Favorited questions are
// excluded from scoring, so the flag is idempotent by design.
func (s *QuestionService) FavoriteQuestion(learnerUID string, questionID uint) error {
	learner, err := s.learnerByUID(learnerUID)
	if err != nil {
		return err
	}
	var count int64
	if err := s.DB.Model(&models.Question{}).Where("id = ?", questionID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrQuestionNotFound
	}

	fav := models.FavoriteQuestion{LearnerID: learner.ID, QuestionID: questionID}
	return s.DB.Where(fav).FirstOrCreate(&fav).Error
}

func (s *QuestionService) UnfavoriteQuestion(learnerUID string, questionID uint) error {
	learner, err := s.learnerByUID(learnerUID)
	if err != nil {
		return err
	}
	// Hard delete: a soft-deleted row would trip the unique index when the
	// learner favorites the same question again.
	return s.DB.Unscoped().
		Where("learner_id = ? AND question_id = ?", learner.ID, questionID).
		Delete(&models.FavoriteQuestion{}).Error
}

func (s *QuestionService) learnerByUID(uid string) (*models.Learner, error) {
	var learner models.Learner
	if err := s.DB.Where("uid = ?", uid).First(&learner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLearnerNotFound
		}
		return nil, err
	}
	return &learner, nil
}

func (s *QuestionService) CreateExamPaper(paper *models.ExamPaper) error {
	if _, err := s.GetSubject(paper.SubjectID); err != nil {
		return err
	}
	if paper.PublishAt != nil {
		paper.Published = false
	}
	return s.DB.Create(paper).Error
}

func (s *QuestionService) ListExamPapers(subjectID uint) ([]models.ExamPaper, error) {
	q := s.DB.Where("published = ?", true)
	if subjectID != 0 {
		q = q.Where("subject_id = ?", subjectID)
	}
	var papers []models.ExamPaper
	err := q.Order("year DESC, name ASC").Find(&papers).Error
	return papers, err
}
