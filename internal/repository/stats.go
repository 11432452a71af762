package repository

import (
	"context"
	"fmt"

	"clap-go/internal/cache"
	"clap-go/internal/models"

	"gorm.io/gorm"
)

// Stats aggregates per-organization attempt figures for the admin dashboard.
// Reads are memoized through an injected TTL cache; writes that change the
// figures call Invalidate.
type Stats struct {
	db    *gorm.DB
	cache *cache.TTLCache
}

func NewStats(db *gorm.DB, c *cache.TTLCache) *Stats {
	return &Stats{db: db, cache: c}
}

func orgStatsKey(organizationID uint) string {
	return fmt.Sprintf("org-stats:%d", organizationID)
}

func (r *Stats) OrgStats(ctx context.Context, organizationID uint) (*models.OrgStats, error) {
	if cached, ok := r.cache.Get(orgStatsKey(organizationID)); ok {
		return cached.(*models.OrgStats), nil
	}

	stats := &models.OrgStats{OrganizationID: organizationID}

	err := r.db.WithContext(ctx).Model(&models.Participant{}).
		Joins("JOIN cohorts ON cohorts.id = participants.cohort_id").
		Where("cohorts.organization_id = ?", organizationID).
		Count(&stats.Participants).Error
	if err != nil {
		return nil, err
	}

	attemptBase := r.db.WithContext(ctx).Model(&models.Attempt{}).
		Joins("JOIN participants ON participants.id = attempts.participant_id").
		Joins("JOIN cohorts ON cohorts.id = participants.cohort_id").
		Where("cohorts.organization_id = ?", organizationID)

	if err := attemptBase.Session(&gorm.Session{}).Count(&stats.AttemptsStarted).Error; err != nil {
		return nil, err
	}
	if err := attemptBase.Session(&gorm.Session{}).
		Where("attempts.status = ?", models.AttemptCompleted).
		Count(&stats.AttemptsCompleted).Error; err != nil {
		return nil, err
	}

	// Overall percentage lives inside the stored report JSON.
	var avg *float64
	err = r.db.WithContext(ctx).Raw(`
		SELECT AVG((a.report_data->>'overallPercentage')::float)
		FROM attempts a
		JOIN participants p ON p.id = a.participant_id
		JOIN cohorts c ON c.id = p.cohort_id
		WHERE c.organization_id = ? AND a.status = ? AND a.report_data IS NOT NULL
	`, organizationID, models.AttemptCompleted).Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	if avg != nil {
		stats.AverageScore = *avg
	}

	r.cache.Set(orgStatsKey(organizationID), stats)
	return stats, nil
}

// Invalidate drops the cached figures for one organization, forcing the next
// read to recompute.
func (r *Stats) Invalidate(organizationID uint) {
	r.cache.Invalidate(orgStatsKey(organizationID))
}
