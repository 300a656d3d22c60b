package postgresadapter

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// CountMeetingEnrollments resolves a meeting to its event and counts the
// enrollments on that event. A missing meeting counts as zero eligible voters.
func (r *Repository) CountMeetingEnrollments(ctx context.Context, meetingID string) (int, error) {
	var meeting meetingModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(meetingID)).
		First(&meeting).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, r.logError("vote_repo_meeting_lookup_failed", err,
			"meeting_id", strings.TrimSpace(meetingID),
		)
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&enrollmentModel{}).
		Where("event_id = ?", meeting.EventID).
		Count(&count).Error; err != nil {
		return 0, r.logError("vote_repo_enrollment_count_failed", err,
			"meeting_id", strings.TrimSpace(meetingID),
			"event_id", meeting.EventID,
		)
	}
	return int(count), nil
}
