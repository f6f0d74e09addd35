package service

import (
	"context"

	"assessment-service/internal/models"

	"github.com/google/uuid"
)

// QuestionService covers authoring: the selector and scorer read questions
// through the bank instead.
type QuestionService struct {
	repo QuestionWriter
}

type QuestionWriter interface {
	QuestionBank
	Create(ctx context.Context, question *models.Question) error
}

func NewQuestionService(repo QuestionWriter) *QuestionService {
	return &QuestionService{repo: repo}
}

func (s *QuestionService) Create(ctx context.Context, question *models.Question) error {
	if err := validateQuestion(question); err != nil {
		return err
	}
	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	question.Active = true
	return s.repo.Create(ctx, question)
}

func (s *QuestionService) Get(ctx context.Context, id string) (*models.Question, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *QuestionService) ListActive(ctx context.Context, category string) ([]models.Question, error) {
	return s.repo.QueryActive(ctx, category, 0, 0)
}

func validateQuestion(q *models.Question) error {
	if q.Text == "" {
		return &models.ValidationError{Reason: "question text is required"}
	}
	if q.Category == "" {
		return &models.ValidationError{Reason: "question category is required"}
	}
	switch q.Type {
	case models.TypeSingleChoice, models.TypeScenarioChoice:
		if len(q.Options.Choices) < 2 {
			return &models.ValidationError{Reason: "choice questions need at least two options"}
		}
		if q.CorrectAnswer != "" && !q.HasChoice(q.CorrectAnswer) {
			return &models.ValidationError{Reason: "correct answer must be one of the offered options"}
		}
	case models.TypeRanking:
		if len(q.Options.RankItems) < 2 {
			return &models.ValidationError{Reason: "ranking questions need at least two items"}
		}
	case models.TypeBehavioralMost, models.TypeBehavioralLeast:
		if len(q.Options.Statements) < 2 {
			return &models.ValidationError{Reason: "behavioral questions need at least two statements"}
		}
	case models.TypeOpenReasoning:
		// Free text, nothing structural to check.
	default:
		return &models.ValidationError{Reason: "unknown question type: " + string(q.Type)}
	}
	return nil
}
