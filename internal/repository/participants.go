package repository

import (
	"context"

	"clap-go/internal/models"

	"gorm.io/gorm"
)

// Participants covers the organization / cohort / participant CRUD surface
// used by the admin pages.
type Participants struct {
	db *gorm.DB
}

func NewParticipants(db *gorm.DB) *Participants {
	return &Participants{db: db}
}

func (r *Participants) CreateOrganization(ctx context.Context, org *models.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *Participants) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	var orgs []models.Organization
	err := r.db.WithContext(ctx).Order("name").Find(&orgs).Error
	return orgs, err
}

func (r *Participants) UpdateOrganization(ctx context.Context, id uint, name string) error {
	return r.db.WithContext(ctx).Model(&models.Organization{}).
		Where("id = ?", id).
		Update("name", name).Error
}

func (r *Participants) DeleteOrganization(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Organization{}, id).Error
}

func (r *Participants) CreateCohort(ctx context.Context, cohort *models.Cohort) error {
	return r.db.WithContext(ctx).Create(cohort).Error
}

func (r *Participants) ListCohorts(ctx context.Context, organizationID uint) ([]models.Cohort, error) {
	var cohorts []models.Cohort
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("name").
		Find(&cohorts).Error
	return cohorts, err
}

func (r *Participants) DeleteCohort(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Cohort{}, id).Error
}

func (r *Participants) CreateParticipant(ctx context.Context, participant *models.Participant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

func (r *Participants) GetParticipant(ctx context.Context, id uint) (*models.Participant, error) {
	var participant models.Participant
	err := r.db.WithContext(ctx).Preload("Cohort").First(&participant, id).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *Participants) ListParticipants(ctx context.Context, cohortID uint) ([]models.Participant, error) {
	var participants []models.Participant
	err := r.db.WithContext(ctx).
		Where("cohort_id = ?", cohortID).
		Order("last_name, first_name").
		Find(&participants).Error
	return participants, err
}

func (r *Participants) UpdateParticipant(ctx context.Context, id uint, firstName, lastName, email string) error {
	return r.db.WithContext(ctx).Model(&models.Participant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"first_name": firstName,
			"last_name":  lastName,
			"email":      email,
		}).Error
}

func (r *Participants) DeleteParticipant(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Participant{}, id).Error
}
