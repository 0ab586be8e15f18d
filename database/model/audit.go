package model

import "time"

// PasswordResetRedemption marks a reset token id as spent. The primary key
// makes a second redemption of the same token fail at insert time.
type PasswordResetRedemption struct {
	JTI        string    `gorm:"primaryKey;type:varchar(64)"`
	UserID     string    `gorm:"type:varchar(36);index"`
	ExpiresAt  time.Time `gorm:"index"`
	RedeemedAt time.Time
}

type AuditLog struct {
	ID         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     string    `json:"userId" gorm:"type:varchar(36);index"`
	UserEmail  string    `json:"userEmail"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resourceId"`
	IP         string    `json:"ip"`
	UserAgent  string    `json:"userAgent"`
	Details    string    `json:"details"`
	Timestamp  time.Time `json:"timestamp" gorm:"index"`
}
