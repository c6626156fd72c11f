package model

import (
	"time"

	"gorm.io/datatypes"
)

// Settings is a singleton row (Id is always 1).
type Settings struct {
	Id                         int            `gorm:"primaryKey"`
	TrialDurationDays          int            `gorm:"not null;default:30"`
	AutoSuspendAfterTrial      bool           `gorm:"not null;default:true"`
	GracePeriodDays            int            `gorm:"not null;default:7"`
	RequireSettledOnReactivate bool           `gorm:"not null;default:false"`
	ReminderDays               datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt                  time.Time      `gorm:"autoUpdateTime"`
}

func (Settings) TableName() string {
	return "settings"
}
