// ABOUTME: Audit log recorder for state-changing portfolio actions
// ABOUTME: Prepends ULID-stamped entries newest-first with an optional retention cap
package audit

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/harperreed/leasebook/models"
)

// TimestampLayout matches the display format of existing entries.
const TimestampLayout = "02/01/2006 03:04:05 PM"

// DefaultCap bounds the log when no explicit cap is configured.
const DefaultCap = 1000

// Recorder creates audit entries. The zero value records without a cap
// using the wall clock.
type Recorder struct {
	// Cap keeps at most this many entries, dropping the oldest. Zero means
	// unbounded.
	Cap int

	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

func NewRecorder(limit int) *Recorder {
	return &Recorder{Cap: limit}
}

// Record prepends a new entry to state.AuditLogs and returns it. Existing
// entries keep their relative order.
func (r *Recorder) Record(state *models.AppState, activity string, status models.AuditStatus, count *int) models.AuditLog {
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}

	entry := models.AuditLog{
		ID:        ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		Timestamp: now.Format(TimestampLayout),
		Activity:  activity,
		Status:    status,
	}
	if count != nil {
		c := *count
		entry.Count = &c
	}

	logs := make([]models.AuditLog, 0, len(state.AuditLogs)+1)
	logs = append(logs, entry)
	logs = append(logs, state.AuditLogs...)
	if r.Cap > 0 && len(logs) > r.Cap {
		logs = logs[:r.Cap]
	}
	state.AuditLogs = logs

	return entry
}

// Recent returns up to n entries from the front of the log.
func Recent(logs []models.AuditLog, n int) []models.AuditLog {
	if n <= 0 || n >= len(logs) {
		return logs
	}
	return logs[:n]
}
