// Package pricing computes the cares amounts settlements move: help-request
// rewards fixed at creation time and per-item loan charges computed when an
// admin validates a return.
package pricing

import (
	"fmt"
	"time"
)

// DefaultHelpRewardRate is the cares-per-hour rate used for help-request
// rewards unless configured otherwise.
const DefaultHelpRewardRate int32 = 50

// HelpReward returns the reward for a help request of the given duration.
// The result is fixed on the request at creation and never recomputed.
func HelpReward(hours, rate int32) int32 {
	return hours * rate
}

// BillableHours returns the whole hours to charge for a loan held from
// start to end: elapsed time rounded up, never less than one hour.
func BillableHours(start, end time.Time) (int32, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("return time %s precedes start time %s", end, start)
	}
	elapsed := end.Sub(start)
	hours := int32(elapsed / time.Hour)
	if elapsed%time.Hour > 0 {
		hours++
	}
	if hours < 1 {
		hours = 1
	}
	return hours, nil
}

// LoanCharge returns the billable hours and the cares owed for one item
// held from start to end at the item's per-hour commission rate.
func LoanCharge(start, end time.Time, commissionRate int32) (hours, amount int32, err error) {
	hours, err = BillableHours(start, end)
	if err != nil {
		return 0, 0, err
	}
	return hours, hours * commissionRate, nil
}
