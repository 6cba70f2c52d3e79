package jobs

import (
	"context"
	"fmt"
	"strconv"

	"communicare-backend/internal/domain"
	"communicare-backend/internal/logger"
)

// RemindPendingLoanValidations notifies admins about loans that are still
// waiting for a validation decision, either at pickup or after return.
func (jr *JobRunner) RemindPendingLoanValidations() {
	jr.runWithRecovery("RemindPendingLoanValidations", func() {
		ctx := context.Background()

		admins, err := jr.accountRepo.ListAdmins(ctx)
		if err != nil {
			logger.Error("Failed to list admins", "error", err)
			return
		}
		if len(admins) == 0 {
			return
		}

		count := 0
		for _, status := range []domain.LoanStatus{domain.LoanStatusRequested, domain.LoanStatusReturnPending} {
			loans, err := jr.loanRepo.ListByStatus(ctx, status)
			if err != nil {
				logger.Error("Failed to list loans", "status", status, "error", err)
				continue
			}
			for _, loan := range loans {
				title := "Loan awaiting validation"
				if status == domain.LoanStatusReturnPending {
					title = "Returned loan awaiting validation"
				}
				for _, admin := range admins {
					note := &domain.Notification{
						UserID:  admin.ID,
						Title:   title,
						Message: fmt.Sprintf("Loan %d by member %d needs a validation decision.", loan.ID, loan.BorrowerID),
						Attributes: map[string]string{
							"loan_id": strconv.Itoa(int(loan.ID)),
							"status":  string(status),
						},
					}
					if err := jr.noteRepo.Create(ctx, note); err != nil {
						logger.Error("Failed to create reminder", "loan_id", loan.ID, "error", err)
					}
				}
				count++
			}
		}

		logger.Info("Sent loan validation reminders", "loans", count)
	})
}

// RemindPendingConclusions notifies admins about help requests marked done
// by their requester but not yet concluded.
func (jr *JobRunner) RemindPendingConclusions() {
	jr.runWithRecovery("RemindPendingConclusions", func() {
		ctx := context.Background()

		admins, err := jr.accountRepo.ListAdmins(ctx)
		if err != nil {
			logger.Error("Failed to list admins", "error", err)
			return
		}
		if len(admins) == 0 {
			return
		}

		reqs, err := jr.reqRepo.ListByStatus(ctx, domain.HelpRequestStatusDone)
		if err != nil {
			logger.Error("Failed to list help requests", "error", err)
			return
		}

		for _, req := range reqs {
			for _, admin := range admins {
				note := &domain.Notification{
					UserID:  admin.ID,
					Title:   "Help request awaiting conclusion",
					Message: fmt.Sprintf("Help request %d was marked done and needs conclusion validation.", req.ID),
					Attributes: map[string]string{
						"request_id": strconv.Itoa(int(req.ID)),
					},
				}
				if err := jr.noteRepo.Create(ctx, note); err != nil {
					logger.Error("Failed to create reminder", "request_id", req.ID, "error", err)
				}
			}
		}

		logger.Info("Sent conclusion reminders", "requests", len(reqs))
	})
}
