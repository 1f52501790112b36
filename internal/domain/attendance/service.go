package attendance

import (
	"context"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/period"
)

type AttendanceService interface {
	// Scan records the next punch of the day for the badge holder.
	Scan(ctx context.Context, req ScanRequest) (ScanResponse, error)

	ListLogs(ctx context.Context, req DayRequest) ([]LogResponse, error)
	GetDailyRecord(ctx context.Context, req DayRequest) (DailyRecordResponse, error)
	GetDTR(ctx context.Context, req DTRRequest) (DTRResponse, error)

	// DailyRecords computes one record per day of p, in date order.
	DailyRecords(ctx context.Context, employeeID string, p period.Period) ([]DailyRecord, error)
}
