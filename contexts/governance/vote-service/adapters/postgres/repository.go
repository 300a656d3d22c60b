package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"agora/contexts/governance/vote-service/domain/entities"
	domainerrors "agora/contexts/governance/vote-service/domain/errors"
	"agora/contexts/governance/vote-service/ports"

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

func (r *Repository) CreateVote(ctx context.Context, vote entities.Vote) error {
	row := voteModelFromEntity(vote)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("vote_repo_create_failed", err, "vote_id", vote.VoteID)
	}
	return nil
}

func (r *Repository) GetVote(ctx context.Context, voteID string) (entities.Vote, error) {
	var row voteModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(voteID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Vote{}, domainerrors.ErrVoteNotFound
		}
		return entities.Vote{}, r.logError("vote_repo_get_failed", err,
			"vote_id", strings.TrimSpace(voteID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListVotesByAssociation(ctx context.Context, associationID string) ([]entities.Vote, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("association_id = ?", strings.TrimSpace(associationID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("vote_repo_list_failed", err,
			"association_id", strings.TrimSpace(associationID),
		)
	}
	items := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateVote(ctx context.Context, voteID string, patch ports.VotePatch) (bool, error) {
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
	if patch.MeetingID != nil {
		meetingID := strings.TrimSpace(*patch.MeetingID)
		if meetingID == "" {
			assignments["meeting_id"] = nil
		} else {
			assignments["meeting_id"] = meetingID
		}
	}
	if patch.Status != nil {
		assignments["status"] = string(*patch.Status)
	}
	if patch.Visibility != nil {
		assignments["visibility"] = string(*patch.Visibility)
	}
	if patch.MinPercentAnswers != nil {
		assignments["min_percent_answers"] = *patch.MinPercentAnswers
	}
	if patch.AcceptanceCriteria != nil {
		assignments["acceptance_criteria"] = string(*patch.AcceptanceCriteria)
	}
	if len(assignments) == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&voteModel{}).
			Where("id = ?", strings.TrimSpace(voteID)).
			Count(&count).Error; err != nil {
			return false, r.logError("vote_repo_update_probe_failed", err,
				"vote_id", strings.TrimSpace(voteID),
			)
		}
		return count > 0, nil
	}

	result := r.db.WithContext(ctx).Model(&voteModel{}).
		Where("id = ?", strings.TrimSpace(voteID)).
		Updates(assignments)
	if result.Error != nil {
		return false, r.logError("vote_repo_update_failed", result.Error,
			"vote_id", strings.TrimSpace(voteID),
		)
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) DeleteVote(ctx context.Context, voteID string) error {
	voteID = strings.TrimSpace(voteID)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vote_id = ?", voteID).Delete(&ballotModel{}).Error; err != nil {
			return r.logError("vote_repo_delete_ballots_failed", err, "vote_id", voteID)
		}
		result := tx.Where("id = ?", voteID).Delete(&voteModel{})
		if result.Error != nil {
			return r.logError("vote_repo_delete_failed", result.Error, "vote_id", voteID)
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrVoteNotFound
		}
		return nil
	})
}

func (r *Repository) InsertBallot(ctx context.Context, ballot entities.Ballot) error {
	row := ballotModel{
		ID:         ballot.BallotID,
		VoteID:     ballot.VoteID,
		Number:     ballot.Number,
		QuestionID: ballot.QuestionID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrBallotConflict
		}
		return r.logError("vote_repo_insert_ballot_failed", err,
			"vote_id", ballot.VoteID,
			"ballot_number", ballot.Number,
		)
	}
	return nil
}

// AppendBallot wraps the counter increment and the ballot insert in one
// transaction; the (vote_id, number) unique index turns a concurrent
// duplicate into ErrBallotConflict.
func (r *Repository) AppendBallot(ctx context.Context, voteID string, ballot entities.Ballot) (entities.Ballot, error) {
	voteID = strings.TrimSpace(voteID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row voteModel
		if err := tx.Where("id = ?", voteID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrVoteNotFound
			}
			return err
		}

		ballot.VoteID = voteID
		ballot.Number = row.CurrentBallot + 1
		ballotRow := ballotModel{
			ID:         ballot.BallotID,
			VoteID:     ballot.VoteID,
			Number:     ballot.Number,
			QuestionID: ballot.QuestionID,
		}
		if err := tx.Create(&ballotRow).Error; err != nil {
			return err
		}

		result := tx.Model(&voteModel{}).
			Where("id = ? AND current_ballot = ?", voteID, row.CurrentBallot).
			Update("current_ballot", ballot.Number)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Another append won the race between our read and this update.
			return domainerrors.ErrBallotConflict
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return entities.Ballot{}, domainerrors.ErrBallotConflict
		}
		if errors.Is(err, domainerrors.ErrVoteNotFound) || errors.Is(err, domainerrors.ErrBallotConflict) {
			return entities.Ballot{}, err
		}
		return entities.Ballot{}, r.logError("vote_repo_append_ballot_failed", err, "vote_id", voteID)
	}
	return ballot, nil
}

func (r *Repository) GetBallot(ctx context.Context, voteID string, number int) (entities.Ballot, error) {
	var row ballotModel
	err := r.db.WithContext(ctx).
		Where("vote_id = ? AND number = ?", strings.TrimSpace(voteID), number).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Ballot{}, domainerrors.ErrBallotNotFound
		}
		return entities.Ballot{}, r.logError("vote_repo_get_ballot_failed", err,
			"vote_id", strings.TrimSpace(voteID),
			"ballot_number", number,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListBallots(ctx context.Context, voteID string) ([]entities.Ballot, error) {
	var rows []ballotModel
	if err := r.db.WithContext(ctx).
		Where("vote_id = ?", strings.TrimSpace(voteID)).
		Order("number ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("vote_repo_list_ballots_failed", err,
			"vote_id", strings.TrimSpace(voteID),
		)
	}
	items := make([]entities.Ballot, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// TransitionStatus is a single conditional UPDATE so concurrent transitions
// cannot interleave a read-then-write.
func (r *Repository) TransitionStatus(
	ctx context.Context,
	voteID string,
	from []entities.VoteStatus,
	to entities.VoteStatus,
) (bool, error) {
	voteID = strings.TrimSpace(voteID)
	fromValues := make([]string, 0, len(from))
	for _, status := range from {
		fromValues = append(fromValues, string(status))
	}

	result := r.db.WithContext(ctx).Model(&voteModel{}).
		Where("id = ? AND status IN ?", voteID, fromValues).
		Update("status", string(to))
	if result.Error != nil {
		return false, r.logError("vote_repo_transition_failed", result.Error,
			"vote_id", voteID,
			"to_status", string(to),
		)
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&voteModel{}).
		Where("id = ?", voteID).
		Count(&count).Error; err != nil {
		return false, r.logError("vote_repo_transition_probe_failed", err, "vote_id", voteID)
	}
	if count == 0 {
		return false, domainerrors.ErrVoteNotFound
	}
	return false, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "governance/vote-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("vote repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
