package domain

// PeriodLockCount exposes the number of live per-period locks to tests.
func (s *BillingService) PeriodLockCount() int {
	return s.locks.size()
}
