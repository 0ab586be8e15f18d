package job

import (
	"github.com/careerconnect/careerconnect/logger"
	"github.com/careerconnect/careerconnect/util/common"
	"github.com/careerconnect/careerconnect/web/service"
)

// ResetRedemptionCleanupJob forgets redeemed reset tokens once they have
// expired and can no longer be presented.
type ResetRedemptionCleanupJob struct{}

func NewResetRedemptionCleanupJob() *ResetRedemptionCleanupJob {
	return new(ResetRedemptionCleanupJob)
}

func (j *ResetRedemptionCleanupJob) Run() {
	defer common.Recover("reset redemption job")
	n, err := service.PurgeExpiredRedemptions()
	if err != nil {
		logger.Warning("purge reset redemptions failed:", err)
		return
	}
	if n > 0 {
		logger.Infof("purged %d expired reset redemptions", n)
	}
}
