package jobs

import (
	"communicare-backend/internal/logger"
	"communicare-backend/internal/repository"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	loanRepo    repository.LoanRepository
	reqRepo     repository.HelpRequestRepository
	accountRepo repository.AccountRepository
	noteRepo    repository.NotificationRepository
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	loanRepo repository.LoanRepository,
	reqRepo repository.HelpRequestRepository,
	accountRepo repository.AccountRepository,
	noteRepo repository.NotificationRepository,
) *JobRunner {
	return &JobRunner{
		loanRepo:    loanRepo,
		reqRepo:     reqRepo,
		accountRepo: accountRepo,
		noteRepo:    noteRepo,
	}
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllJobs runs every job once (for manual execution)
func (jr *JobRunner) RunAllJobs() {
	jr.RemindPendingLoanValidations()
	jr.RemindPendingConclusions()
}
