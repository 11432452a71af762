package models

import "time"

// Organization is a client company whose staff go through the program.
type Organization struct {
	ID        uint `gorm:"primaryKey"`
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Cohort is one training group within an organization.
type Cohort struct {
	ID             uint `gorm:"primaryKey"`
	OrganizationID uint `gorm:"index"`
	Organization   Organization `gorm:"foreignKey:OrganizationID"`
	Name           string
	StartsOn       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Participant is one person taking assessments, tracked within a cohort.
type Participant struct {
	ID        uint `gorm:"primaryKey"`
	CohortID  uint `gorm:"index"`
	Cohort    Cohort `gorm:"foreignKey:CohortID"`
	FirstName string
	LastName  string
	Email     string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrgStats is an aggregate view over one organization's attempts, served
// from a TTL cache because admin dashboards poll it.
type OrgStats struct {
	OrganizationID    uint    `json:"organizationId"`
	Participants      int64   `json:"participants"`
	AttemptsStarted   int64   `json:"attemptsStarted"`
	AttemptsCompleted int64   `json:"attemptsCompleted"`
	AverageScore      float64 `json:"averageScore"`
}
