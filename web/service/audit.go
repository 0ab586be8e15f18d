package service

import (
	"fmt"
	"time"

	"github.com/careerconnect/careerconnect/database"
	"github.com/careerconnect/careerconnect/database/model"
	"github.com/careerconnect/careerconnect/logger"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

// AuditLogService records administrative changes.
type AuditLogService struct{}

// AuditEntry describes one administrative action.
type AuditEntry struct {
	UserID     string
	UserEmail  string
	Action     string
	Resource   string
	ResourceID string
	IP         string
	UserAgent  string
	Details    map[string]any
}

// AuditFilter narrows GetAuditLogs. Zero values match everything.
type AuditFilter struct {
	UserID   string
	Action   string
	Resource string
	Since    *time.Time
	Until    *time.Time
	Limit    int
	Offset   int
}

func (s *AuditLogService) LogAction(e AuditEntry) error {
	detailsJSON := ""
	if e.Details != nil {
		data, err := json.Marshal(e.Details)
		if err != nil {
			logger.Warning("Failed to marshal audit log details:", err)
		} else {
			detailsJSON = string(data)
		}
	}

	entry := model.AuditLog{
		UserID:     e.UserID,
		UserEmail:  e.UserEmail,
		Action:     e.Action,
		Resource:   e.Resource,
		ResourceID: e.ResourceID,
		IP:         e.IP,
		UserAgent:  e.UserAgent,
		Details:    detailsJSON,
		Timestamp:  time.Now(),
	}
	if err := database.GetDB().Create(&entry).Error; err != nil {
		logger.Warningf("Failed to create audit log: user=%s, action=%s, resource=%s, error=%v", e.UserID, e.Action, e.Resource, err)
		return err
	}
	return nil
}

// GetAuditLogs returns matching entries, newest first, and the total count.
func (s *AuditLogService) GetAuditLogs(f AuditFilter) ([]model.AuditLog, int64, error) {
	query := database.GetDB().Model(&model.AuditLog{})
	if f.UserID != "" {
		query = query.Where("user_id = ?", f.UserID)
	}
	if f.Action != "" {
		query = query.Where("action = ?", f.Action)
	}
	if f.Resource != "" {
		query = query.Where("resource = ?", f.Resource)
	}
	if f.Since != nil {
		query = query.Where("timestamp >= ?", *f.Since)
	}
	if f.Until != nil {
		query = query.Where("timestamp <= ?", *f.Until)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 || f.Limit > 1000 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	logs := make([]model.AuditLog, 0)
	if err := query.Order("timestamp DESC").Limit(f.Limit).Offset(f.Offset).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// CleanOldLogs removes entries older than days.
func (s *AuditLogService) CleanOldLogs(days int) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("days must be greater than 0")
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	res := database.GetDB().Where("timestamp < ?", cutoff).Delete(&model.AuditLog{})
	if res.Error != nil {
		return 0, res.Error
	}
	logger.Infof("Cleaned %d old audit logs (older than %d days)", res.RowsAffected, days)
	return res.RowsAffected, nil
}
