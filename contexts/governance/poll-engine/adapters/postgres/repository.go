package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"agora/contexts/governance/poll-engine/domain/entities"
	domainerrors "agora/contexts/governance/poll-engine/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateQuestion(ctx context.Context, question entities.Question) error {
	row, optionRows := questionToModels(question)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return r.logError("poll_repo_create_question_failed", err,
				"question_id", question.QuestionID,
			)
		}
		if len(optionRows) > 0 {
			if err := tx.Create(&optionRows).Error; err != nil {
				return r.logError("poll_repo_create_options_failed", err,
					"question_id", question.QuestionID,
				)
			}
		}
		return nil
	})
}

func (r *Repository) GetQuestion(ctx context.Context, questionID string) (entities.Question, error) {
	var row questionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(questionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Question{}, domainerrors.ErrQuestionNotFound
		}
		return entities.Question{}, r.logError("poll_repo_get_question_failed", err,
			"question_id", strings.TrimSpace(questionID),
		)
	}
	optionRows, err := r.listOptionRows(ctx, row.ID)
	if err != nil {
		return entities.Question{}, err
	}
	return questionFromModels(row, optionRows), nil
}

func (r *Repository) ListQuestionsBySurvey(ctx context.Context, surveyID string) ([]entities.Question, error) {
	var rows []questionModel
	if err := r.db.WithContext(ctx).
		Where("survey_id = ?", strings.TrimSpace(surveyID)).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("poll_repo_list_questions_failed", err,
			"survey_id", strings.TrimSpace(surveyID),
		)
	}
	items := make([]entities.Question, 0, len(rows))
	for _, row := range rows {
		optionRows, err := r.listOptionRows(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, questionFromModels(row, optionRows))
	}
	return items, nil
}

// DeleteQuestion removes the question and everything it owns. The cascade is
// explicit here rather than delegated to foreign-key ON DELETE clauses.
func (r *Repository) DeleteQuestion(ctx context.Context, questionID string) error {
	questionID = strings.TrimSpace(questionID)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row questionModel
		if err := tx.Where("id = ?", questionID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrQuestionNotFound
			}
			return r.logError("poll_repo_delete_question_load_failed", err, "question_id", questionID)
		}
		if err := tx.Where("question_id = ?", questionID).Delete(&answerModel{}).Error; err != nil {
			return r.logError("poll_repo_delete_answers_failed", err, "question_id", questionID)
		}
		if err := tx.Where("question_id = ?", questionID).Delete(&answerSheetModel{}).Error; err != nil {
			return r.logError("poll_repo_delete_answer_sheets_failed", err, "question_id", questionID)
		}
		if err := tx.Where("question_id = ?", questionID).Delete(&optionModel{}).Error; err != nil {
			return r.logError("poll_repo_delete_options_failed", err, "question_id", questionID)
		}
		if err := tx.Where("id = ?", questionID).Delete(&questionModel{}).Error; err != nil {
			return r.logError("poll_repo_delete_question_failed", err, "question_id", questionID)
		}
		return nil
	})
}

func (r *Repository) GetOption(ctx context.Context, optionID string) (entities.Option, error) {
	var row optionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(optionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Option{}, domainerrors.ErrOptionNotFound
		}
		return entities.Option{}, r.logError("poll_repo_get_option_failed", err,
			"option_id", strings.TrimSpace(optionID),
		)
	}
	return entities.Option{
		OptionID:   row.ID,
		QuestionID: row.QuestionID,
		Content:    row.Content,
		Position:   row.Position,
	}, nil
}

func (r *Repository) CountAnswers(ctx context.Context, optionID string) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&answerModel{}).
		Where("option_id = ?", strings.TrimSpace(optionID)).
		Count(&count).Error; err != nil {
		return 0, r.logError("poll_repo_count_answers_failed", err,
			"option_id", strings.TrimSpace(optionID),
		)
	}
	return int(count), nil
}

// RecordAnswers claims the answer sheet and inserts the option rows in one
// transaction. The sheet's composite primary key turns a concurrent duplicate
// claim into a unique violation mapped to ErrAlreadyAnswered.
func (r *Repository) RecordAnswers(ctx context.Context, questionID string, responderID string, optionIDs []string) error {
	questionID = strings.TrimSpace(questionID)
	responderID = strings.TrimSpace(responderID)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&questionModel{}).Where("id = ?", questionID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrQuestionNotFound
		}

		var claimed int64
		if err := tx.Model(&answerSheetModel{}).
			Where("question_id = ? AND responder_id = ?", questionID, responderID).
			Count(&claimed).Error; err != nil {
			return err
		}
		if claimed > 0 {
			return domainerrors.ErrAlreadyAnswered
		}
		if len(optionIDs) == 0 {
			return nil
		}

		if err := tx.Create(&answerSheetModel{
			QuestionID:  questionID,
			ResponderID: responderID,
		}).Error; err != nil {
			return err
		}
		rows := make([]answerModel, 0, len(optionIDs))
		for _, optionID := range optionIDs {
			rows = append(rows, answerModel{
				QuestionID:  questionID,
				ResponderID: responderID,
				OptionID:    strings.TrimSpace(optionID),
			})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyAnswered
		}
		if errors.Is(err, domainerrors.ErrQuestionNotFound) || errors.Is(err, domainerrors.ErrAlreadyAnswered) {
			return err
		}
		return r.logError("poll_repo_record_answers_failed", err,
			"question_id", questionID,
			"responder_id", responderID,
		)
	}
	return nil
}

func (r *Repository) listOptionRows(ctx context.Context, questionID string) ([]optionModel, error) {
	var optionRows []optionModel
	if err := r.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("position ASC").
		Find(&optionRows).Error; err != nil {
		return nil, r.logError("poll_repo_list_options_failed", err, "question_id", questionID)
	}
	return optionRows, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "governance/poll-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("poll repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
