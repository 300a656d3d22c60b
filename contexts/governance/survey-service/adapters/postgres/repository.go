package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"agora/contexts/governance/survey-service/domain/entities"
	domainerrors "agora/contexts/governance/survey-service/domain/errors"
	"agora/contexts/governance/survey-service/ports"

	"gorm.io/gorm"
)

type surveyModel struct {
	ID            string `gorm:"column:id;primaryKey"`
	Title         string `gorm:"column:title;not null"`
	Description   string `gorm:"column:description"`
	Visibility    string `gorm:"column:visibility;not null"`
	AssociationID string `gorm:"column:association_id;index;not null"`
}

func (surveyModel) TableName() string {
	return "surveys"
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&surveyModel{})
}

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

func (r *Repository) CreateSurvey(ctx context.Context, survey entities.Survey) error {
	row := surveyModel{
		ID:            survey.SurveyID,
		Title:         survey.Title,
		Description:   survey.Description,
		Visibility:    string(survey.Visibility),
		AssociationID: survey.AssociationID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("survey_repo_create_failed", err, "survey_id", survey.SurveyID)
	}
	return nil
}

func (r *Repository) GetSurvey(ctx context.Context, surveyID string) (entities.Survey, error) {
	var row surveyModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(surveyID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Survey{}, domainerrors.ErrSurveyNotFound
		}
		return entities.Survey{}, r.logError("survey_repo_get_failed", err,
			"survey_id", strings.TrimSpace(surveyID),
		)
	}
	return toEntity(row), nil
}

func (r *Repository) ListSurveysByAssociation(ctx context.Context, associationID string) ([]entities.Survey, error) {
	var rows []surveyModel
	if err := r.db.WithContext(ctx).
		Where("association_id = ?", strings.TrimSpace(associationID)).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("survey_repo_list_failed", err,
			"association_id", strings.TrimSpace(associationID),
		)
	}
	items := make([]entities.Survey, 0, len(rows))
	for _, row := range rows {
		items = append(items, toEntity(row))
	}
	return items, nil
}

func (r *Repository) UpdateSurvey(ctx context.Context, surveyID string, patch ports.SurveyPatch) (bool, error) {
	assignments := make(map[string]any)
	if patch.Title != nil {
		assignments["title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		assignments["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.AssociationID != nil {
		assignments["association_id"] = strings.TrimSpace(*patch.AssociationID)
	}
	if patch.Visibility != nil {
		assignments["visibility"] = string(*patch.Visibility)
	}
	if len(assignments) == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&surveyModel{}).
			Where("id = ?", strings.TrimSpace(surveyID)).
			Count(&count).Error; err != nil {
			return false, r.logError("survey_repo_update_probe_failed", err,
				"survey_id", strings.TrimSpace(surveyID),
			)
		}
		return count > 0, nil
	}

	result := r.db.WithContext(ctx).Model(&surveyModel{}).
		Where("id = ?", strings.TrimSpace(surveyID)).
		Updates(assignments)
	if result.Error != nil {
		return false, r.logError("survey_repo_update_failed", result.Error,
			"survey_id", strings.TrimSpace(surveyID),
		)
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) DeleteSurvey(ctx context.Context, surveyID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(surveyID)).
		Delete(&surveyModel{})
	if result.Error != nil {
		return r.logError("survey_repo_delete_failed", result.Error,
			"survey_id", strings.TrimSpace(surveyID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSurveyNotFound
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "governance/survey-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("survey repository operation failed", fields...)
	return err
}

func toEntity(row surveyModel) entities.Survey {
	return entities.Survey{
		SurveyID:      row.ID,
		Title:         row.Title,
		Description:   row.Description,
		Visibility:    entities.SurveyVisibility(row.Visibility),
		AssociationID: row.AssociationID,
	}
}
