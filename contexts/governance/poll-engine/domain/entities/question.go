package entities

// QuestionType discriminates answer cardinality for a poll question.
type QuestionType string

const (
	QuestionTypeSingleChoice   QuestionType = "single_choice"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
)

func (t QuestionType) Valid() bool {
	return t == QuestionTypeSingleChoice || t == QuestionTypeMultipleChoice
}

// Question is a prompt with a fixed option set, answerable once per responder.
// SurveyID is empty for questions owned by a vote ballot.
type Question struct {
	QuestionID string
	Prompt     string
	Type       QuestionType
	SurveyID   string
	Options    []Option
}

func (q Question) OptionIDs() []string {
	ids := make([]string, 0, len(q.Options))
	for _, option := range q.Options {
		ids = append(ids, option.OptionID)
	}
	return ids
}

// Option position is the stable display/tie-break order within its question.
type Option struct {
	OptionID   string
	QuestionID string
	Content    string
	Position   int
}

type OptionCount struct {
	OptionID string
	Count    int
}

type QuestionAnswersCount struct {
	QuestionID   string
	OptionCounts []OptionCount
}

func (c QuestionAnswersCount) TotalCount() int {
	total := 0
	for _, optionCount := range c.OptionCounts {
		total += optionCount.Count
	}
	return total
}
