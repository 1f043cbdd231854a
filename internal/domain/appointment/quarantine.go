package appointment

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Quarantine holds a stored line that could not be rebuilt into an
// Appointment. The raw text is kept verbatim so the next snapshot re-emits
// it byte-for-byte, and so its embedded clinician and date fields can still
// veto bookings. The UUID identifies the record in logs and operator
// tooling for the lifetime of the process; the file itself never changes.
type Quarantine struct {
	ID    uuid.UUID
	Raw   string
	Cause string
}

// NewQuarantine tags a raw line with a fresh identity and the reason it
// failed to parse.
func NewQuarantine(raw, cause string) Quarantine {
	return Quarantine{ID: uuid.New(), Raw: raw, Cause: cause}
}

// ClinicianID extracts the clinician field (third) from the raw line. It
// reports false when the line has too few fields to carry one.
func (q Quarantine) ClinicianID() (string, bool) {
	fields := strings.Split(q.Raw, ",")
	if len(fields) < 4 {
		return "", false
	}
	return strings.TrimSpace(fields[2]), true
}

// StartTime parses the date field (fourth) of the raw line. An error means
// the field is present but unreadable; conflict detection treats that as an
// occupied slot.
func (q Quarantine) StartTime() (time.Time, error) {
	fields := strings.Split(q.Raw, ",")
	if len(fields) < 4 {
		return time.Time{}, nil
	}
	return ParseTime(strings.TrimSpace(fields[3]))
}
