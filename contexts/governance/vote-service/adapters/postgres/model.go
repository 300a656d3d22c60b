package postgresadapter

import (
	"time"

	"agora/contexts/governance/vote-service/domain/entities"

	"gorm.io/gorm"
)

type voteModel struct {
	ID                 string    `gorm:"column:id;primaryKey"`
	Title              string    `gorm:"column:title;not null"`
	Description        string    `gorm:"column:description"`
	Status             string    `gorm:"column:status;not null"`
	Visibility         string    `gorm:"column:visibility;not null"`
	MinPercentAnswers  int       `gorm:"column:min_percent_answers;not null"`
	AcceptanceCriteria string    `gorm:"column:acceptance_criteria;not null"`
	AssociationID      string    `gorm:"column:association_id;index;not null"`
	MeetingID          *string   `gorm:"column:meeting_id"`
	CurrentBallot      int       `gorm:"column:current_ballot;not null;default:1"`
	CreatedAt          time.Time `gorm:"column:created_at;not null"`
}

func (voteModel) TableName() string {
	return "votes"
}

// ballotModel's unique index on (vote_id, number) backstops the transactional
// append against duplicate ballot numbers.
type ballotModel struct {
	ID         string `gorm:"column:id;primaryKey"`
	VoteID     string `gorm:"column:vote_id;uniqueIndex:idx_ballots_vote_number;not null"`
	Number     int    `gorm:"column:number;uniqueIndex:idx_ballots_vote_number;not null"`
	QuestionID string `gorm:"column:question_id;not null"`
}

func (ballotModel) TableName() string {
	return "ballots"
}

// meetingModel and enrollmentModel are read-only projections of tables owned
// by the meetings/events services; the vote service only counts through them
// for quorum.
type meetingModel struct {
	ID      string `gorm:"column:id;primaryKey"`
	EventID string `gorm:"column:event_id;not null"`
}

func (meetingModel) TableName() string {
	return "meetings"
}

type enrollmentModel struct {
	ID      string `gorm:"column:id;primaryKey"`
	EventID string `gorm:"column:event_id;index;not null"`
	UserID  string `gorm:"column:user_id;not null"`
}

func (enrollmentModel) TableName() string {
	return "event_user_enrollments"
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&voteModel{},
		&ballotModel{},
		&meetingModel{},
		&enrollmentModel{},
	)
}

func (m voteModel) toEntity() entities.Vote {
	vote := entities.Vote{
		VoteID:             m.ID,
		Title:              m.Title,
		Description:        m.Description,
		Status:             entities.VoteStatus(m.Status),
		Visibility:         entities.VoteVisibility(m.Visibility),
		MinPercentAnswers:  m.MinPercentAnswers,
		AcceptanceCriteria: entities.AcceptanceCriteria(m.AcceptanceCriteria),
		AssociationID:      m.AssociationID,
		CurrentBallot:      m.CurrentBallot,
		CreatedAt:          m.CreatedAt,
	}
	if m.MeetingID != nil {
		vote.MeetingID = *m.MeetingID
	}
	return vote
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	row := voteModel{
		ID:                 vote.VoteID,
		Title:              vote.Title,
		Description:        vote.Description,
		Status:             string(vote.Status),
		Visibility:         string(vote.Visibility),
		MinPercentAnswers:  vote.MinPercentAnswers,
		AcceptanceCriteria: string(vote.AcceptanceCriteria),
		AssociationID:      vote.AssociationID,
		CurrentBallot:      vote.CurrentBallot,
		CreatedAt:          vote.CreatedAt,
	}
	if vote.MeetingID != "" {
		meetingID := vote.MeetingID
		row.MeetingID = &meetingID
	}
	return row
}

func (m ballotModel) toEntity() entities.Ballot {
	return entities.Ballot{
		BallotID:   m.ID,
		VoteID:     m.VoteID,
		Number:     m.Number,
		QuestionID: m.QuestionID,
	}
}
