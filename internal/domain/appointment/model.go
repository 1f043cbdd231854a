// Package appointment implements the scheduling engine: the appointment
// entity and its status lifecycle, the line-oriented text store with
// quarantine of unreadable records, and the Scheduler that detects
// 30-minute slot conflicts for clinicians.
package appointment

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for the scheduler's business rules. Callers distinguish
// failure classes with errors.Is; the wrapped message carries the detail.
var (
	ErrNilAppointment     = errors.New("appointment is nil")
	ErrInvalidAppointment = errors.New("appointment is missing required fields")
	ErrUnknownPatient     = errors.New("patient not found in directory")
	ErrUnknownClinician   = errors.New("clinician not found in directory")
	ErrPastTime           = errors.New("appointment time must be in the future")
	ErrConflict           = errors.New("clinician already booked in that slot")
	ErrNotFound           = errors.New("appointment not found")
	ErrIllegalTransition  = errors.New("illegal status transition")
)

// SlotDuration is the fixed length of the booking slot that starts at an
// appointment's scheduled time.
const SlotDuration = 30 * time.Minute

// slotContains reports whether t falls inside the half-open interval
// [start, start+SlotDuration).
func slotContains(start, t time.Time) bool {
	return !t.Before(start) && t.Before(start.Add(SlotDuration))
}

// Status is the lifecycle state of an appointment.
type Status int

const (
	Pending Status = iota
	Confirmed
	Cancelled
	Completed
	NoShow
)

var statusNames = map[Status]string{
	Pending:   "PENDING",
	Confirmed: "CONFIRMED",
	Cancelled: "CANCELLED",
	Completed: "COMPLETED",
	NoShow:    "NO_SHOW",
}

// String returns the wire name of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus resolves a wire name back to a Status.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown appointment status %q", name)
}

// Appointment binds a patient and a clinician to a time slot. Patients and
// clinicians are referenced by cedula only; the directory owns the records.
type Appointment struct {
	ID          string
	PatientID   string
	ClinicianID string
	Reason      string
	Time        time.Time
	Status      Status
}

// Valid reports whether the appointment is structurally complete. Invalid
// appointments must never be scheduled or persisted.
func (a *Appointment) Valid() bool {
	return strings.TrimSpace(a.PatientID) != "" &&
		strings.TrimSpace(a.ClinicianID) != "" &&
		strings.TrimSpace(a.Reason) != "" &&
		!a.Time.IsZero()
}

// Confirm moves a PENDING appointment to CONFIRMED.
func (a *Appointment) Confirm() error {
	if a.Status != Pending {
		return fmt.Errorf("%w: cannot confirm a %s appointment", ErrIllegalTransition, a.Status)
	}
	a.Status = Confirmed
	return nil
}

// Cancel moves the appointment to CANCELLED from any state except COMPLETED.
func (a *Appointment) Cancel() error {
	if a.Status == Completed {
		return fmt.Errorf("%w: cannot cancel a %s appointment", ErrIllegalTransition, a.Status)
	}
	a.Status = Cancelled
	return nil
}

// Complete moves a CONFIRMED appointment to COMPLETED.
func (a *Appointment) Complete() error {
	if a.Status != Confirmed {
		return fmt.Errorf("%w: cannot complete a %s appointment", ErrIllegalTransition, a.Status)
	}
	a.Status = Completed
	return nil
}

// MarkNoShow records that the patient did not attend. It applies only from
// PENDING or CONFIRMED and is a no-op in every other state.
func (a *Appointment) MarkNoShow() {
	if a.Status == Pending || a.Status == Confirmed {
		a.Status = NoShow
	}
}

// Editable reports whether the appointment may still be freely rescheduled.
func (a *Appointment) Editable() bool {
	return a.Status == Pending
}

// Active reports whether the appointment still occupies the clinician's
// agenda (pending or confirmed).
func (a *Appointment) Active() bool {
	return a.Status == Pending || a.Status == Confirmed
}

// Wire layouts for the naive local date-time field. Records are written at
// minute precision; second precision is accepted on read.
const timeLayout = "2006-01-02T15:04"

var timeLayouts = []string{"2006-01-02T15:04:05", timeLayout}

// ParseTime parses the timezone-naive ISO-8601 date-time used on the wire.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date-time %q", s)
}

// FormatTime emits the wire form of t at minute precision.
func FormatTime(t time.Time) string {
	return t.Format(timeLayout)
}
