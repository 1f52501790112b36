package attendance

import (
	"context"
	"time"
)

// ScanGuard serializes and throttles scans per employee across instances.
type ScanGuard interface {
	// Lock returns ErrScanInProgress when another scan for the employee holds
	// the lock. The returned release func must be called once.
	Lock(ctx context.Context, employeeID string) (release func(context.Context) error, err error)

	// InCooldown reports whether the employee scanned successfully less than
	// the cooldown ago.
	InCooldown(ctx context.Context, employeeID string) (bool, error)

	// MarkScanned starts the cooldown for the employee.
	MarkScanned(ctx context.Context, employeeID string) error
}

// ScanEvent is pushed to live dashboards after a punch is stored.
type ScanEvent struct {
	LogID        string    `json:"log_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Branch       string    `json:"branch"`
	Type         PunchType `json:"type"`
	Date         string    `json:"date"`
	Timestamp    time.Time `json:"timestamp"`
	TimeDisplay  string    `json:"time_display"`
}

// ScanPublisher fans scan events out to subscribers. Publishing never blocks
// the scan.
type ScanPublisher interface {
	PublishScan(event ScanEvent)
}
