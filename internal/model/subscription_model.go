package model

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationId uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uniq_org_current_subscription,where:is_current"`
	PlanId         uuid.UUID `gorm:"type:uuid;not null;index"`
	ContactEmail   string    `gorm:"type:varchar(255)"`
	Status         string    `gorm:"type:subscription_status;not null"`
	IsCurrent      bool      `gorm:"not null;default:false"`

	SubscribedAt   time.Time `gorm:"not null"`
	TrialStartDate time.Time `gorm:"not null"`
	TrialEndDate   time.Time `gorm:"not null"`

	CurrentPeriodEnd time.Time `gorm:"not null"`
	NextBillingDate  time.Time `gorm:"not null;index"`

	AmountDue   int64 `gorm:"not null;default:0"`
	IsProrata   bool  `gorm:"not null;default:false"`
	ProrataDays int   `gorm:"not null;default:0"`

	FreeMonthsRemaining int `gorm:"not null;default:0"`

	CancelledAt        *time.Time
	CancellationReason string `gorm:"type:text"`
	SuspensionReason   string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
