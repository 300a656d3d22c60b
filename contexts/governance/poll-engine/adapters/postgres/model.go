package postgresadapter

import (
	"agora/contexts/governance/poll-engine/domain/entities"

	"gorm.io/gorm"
)

type questionModel struct {
	ID       string  `gorm:"column:id;primaryKey"`
	Prompt   string  `gorm:"column:prompt;not null"`
	Type     string  `gorm:"column:type;not null"`
	SurveyID *string `gorm:"column:survey_id;index"`
}

func (questionModel) TableName() string {
	return "poll_questions"
}

type optionModel struct {
	ID         string `gorm:"column:id;primaryKey"`
	QuestionID string `gorm:"column:question_id;index;not null"`
	Content    string `gorm:"column:content;not null"`
	Position   int    `gorm:"column:position;not null"`
}

func (optionModel) TableName() string {
	return "poll_options"
}

// answerSheetModel claims the one-shot answering right. The composite primary
// key makes a second claim for the same (question, responder) a unique
// violation, which closes the check-then-act race at the storage layer.
type answerSheetModel struct {
	QuestionID  string `gorm:"column:question_id;primaryKey"`
	ResponderID string `gorm:"column:responder_id;primaryKey"`
}

func (answerSheetModel) TableName() string {
	return "poll_answer_sheets"
}

type answerModel struct {
	QuestionID  string `gorm:"column:question_id;primaryKey"`
	ResponderID string `gorm:"column:responder_id;primaryKey"`
	OptionID    string `gorm:"column:option_id;primaryKey;index"`
}

func (answerModel) TableName() string {
	return "poll_answers"
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&questionModel{},
		&optionModel{},
		&answerSheetModel{},
		&answerModel{},
	)
}

func questionFromModels(row questionModel, optionRows []optionModel) entities.Question {
	question := entities.Question{
		QuestionID: row.ID,
		Prompt:     row.Prompt,
		Type:       entities.QuestionType(row.Type),
	}
	if row.SurveyID != nil {
		question.SurveyID = *row.SurveyID
	}
	for _, optionRow := range optionRows {
		question.Options = append(question.Options, entities.Option{
			OptionID:   optionRow.ID,
			QuestionID: optionRow.QuestionID,
			Content:    optionRow.Content,
			Position:   optionRow.Position,
		})
	}
	return question
}

func questionToModels(question entities.Question) (questionModel, []optionModel) {
	row := questionModel{
		ID:     question.QuestionID,
		Prompt: question.Prompt,
		Type:   string(question.Type),
	}
	if question.SurveyID != "" {
		surveyID := question.SurveyID
		row.SurveyID = &surveyID
	}
	optionRows := make([]optionModel, 0, len(question.Options))
	for _, option := range question.Options {
		optionRows = append(optionRows, optionModel{
			ID:         option.OptionID,
			QuestionID: option.QuestionID,
			Content:    option.Content,
			Position:   option.Position,
		})
	}
	return row, optionRows
}
