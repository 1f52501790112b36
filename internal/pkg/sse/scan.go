package sse

import (
	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/attendance"
)

// ScanEventName is the SSE "event:" field of live scan events.
const ScanEventName = "scan"

// BranchTopic is the topic carrying one branch's scans.
func BranchTopic(branch string) string {
	return "branch:" + branch
}

// ScanBroadcaster publishes scan events on the hub, keyed by branch.
type ScanBroadcaster struct {
	hub *Hub
}

func NewScanBroadcaster(hub *Hub) *ScanBroadcaster {
	return &ScanBroadcaster{hub: hub}
}

func (b *ScanBroadcaster) PublishScan(ev attendance.ScanEvent) {
	b.hub.Publish(BranchTopic(ev.Branch), Event{Event: ScanEventName, Data: ev})
}
