package service

import (
	"fmt"

	"mortgage-calculator/domain"
)

const paymentsPerView = domain.MonthsPerYear

// SelectView returns the rows of schedule shown by view. An empty view means full.
// The returned slice shares memory with schedule.
func SelectView(schedule domain.Schedule, view domain.ScheduleView) (domain.Schedule, error) {
	switch view {
	case "", domain.ViewFull:
		return schedule, nil
	case domain.ViewFirstYear:
		return schedule[:min(paymentsPerView, len(schedule))], nil
	case domain.ViewLastYear:
		return schedule[max(len(schedule)-paymentsPerView, 0):], nil
	case domain.ViewEveryYear:
		out := make(domain.Schedule, 0, len(schedule)/paymentsPerView+1)
		for i := 0; i < len(schedule); i += paymentsPerView {
			out = append(out, schedule[i])
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidView, view)
	}
}
