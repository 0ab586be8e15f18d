package job

import (
	"github.com/careerconnect/careerconnect/config"
	"github.com/careerconnect/careerconnect/logger"
	"github.com/careerconnect/careerconnect/util/common"
	"github.com/careerconnect/careerconnect/web/service"
)

// AuditCleanupJob drops audit entries past the retention period.
type AuditCleanupJob struct {
	auditService  service.AuditLogService
	retentionDays func() int
}

func NewAuditCleanupJob() *AuditCleanupJob {
	return &AuditCleanupJob{retentionDays: config.GetAuditRetentionDays}
}

// Run is called by the cron scheduler.
func (j *AuditCleanupJob) Run() {
	defer common.Recover("audit cleanup job")
	logger.Debug("Audit cleanup job started")

	retentionDays := j.retentionDays()
	if retentionDays <= 0 {
		logger.Debug("Audit retention disabled")
		return
	}

	n, err := j.auditService.CleanOldLogs(retentionDays)
	if err != nil {
		logger.Warning("Failed to clean old audit logs:", err)
		return
	}
	logger.Debugf("Audit cleanup removed %d entries (retention: %d days)", n, retentionDays)
}
