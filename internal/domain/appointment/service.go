package appointment

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const idPrefix = "CITA-"

// Scheduler owns the in-memory appointment collection. It is the sole
// mutator: every mutating call runs the whole load-mutate-persist cycle
// under one mutex, and every query returns copies. After a successful
// mutation the snapshot is rewritten synchronously; a failed save is logged
// and the mutation stands (the disk copy is stale until the next save).
type Scheduler struct {
	mu          sync.Mutex
	store       Store
	dir         Directory
	log         zerolog.Logger
	now         func() time.Time
	appts       []*Appointment
	quarantined []Quarantine
	nextID      int
}

// NewScheduler loads the snapshot and seeds the identifier counter past
// every identifier found in it, so reloading persisted data never reuses one.
func NewScheduler(store Store, dir Directory, log zerolog.Logger) (*Scheduler, error) {
	appts, quarantined, err := store.Load()
	if err != nil {
		return nil, err
	}
	s := &Scheduler{
		store:       store,
		dir:         dir,
		log:         log,
		now:         time.Now,
		appts:       appts,
		quarantined: quarantined,
		nextID:      1,
	}
	for _, a := range appts {
		s.absorbID(a.ID)
	}
	return s, nil
}

// Create validates and books a new appointment. On success the appointment
// receives its minted identifier and the snapshot is rewritten.
func (s *Scheduler) Create(a *Appointment) error {
	if a == nil {
		return ErrNilAppointment
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !a.Valid() {
		return ErrInvalidAppointment
	}
	if !s.dir.PatientExists(a.PatientID) {
		return fmt.Errorf("%w: %s", ErrUnknownPatient, a.PatientID)
	}
	if !s.dir.ClinicianExists(a.ClinicianID) {
		return fmt.Errorf("%w: %s", ErrUnknownClinician, a.ClinicianID)
	}
	if !a.Time.After(s.now()) {
		return fmt.Errorf("%w: %s", ErrPastTime, FormatTime(a.Time))
	}
	if err := s.conflict(a.ClinicianID, a.Time, ""); err != nil {
		return err
	}

	if a.ID == "" {
		a.ID = s.mintID()
	} else {
		s.absorbID(a.ID)
	}

	stored := *a
	s.appts = append(s.appts, &stored)
	s.persist()
	return nil
}

// Update overwrites reason and status unconditionally. A changed time is
// re-checked for conflicts first, excluding the appointment itself.
func (s *Scheduler) Update(id string, updated Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(id)
	if a == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !updated.Time.IsZero() && !updated.Time.Equal(a.Time) {
		if err := s.conflict(a.ClinicianID, updated.Time, id); err != nil {
			return err
		}
		a.Time = updated.Time
	}
	a.Reason = updated.Reason
	a.Status = updated.Status
	s.persist()
	return nil
}

// Confirm transitions the appointment to CONFIRMED and persists on success.
func (s *Scheduler) Confirm(id string) error {
	return s.transition(id, func(a *Appointment) error { return a.Confirm() })
}

// Cancel transitions the appointment to CANCELLED and persists on success.
func (s *Scheduler) Cancel(id string) error {
	return s.transition(id, func(a *Appointment) error { return a.Cancel() })
}

// Complete transitions the appointment to COMPLETED and persists on success.
func (s *Scheduler) Complete(id string) error {
	return s.transition(id, func(a *Appointment) error { return a.Complete() })
}

func (s *Scheduler) transition(id string, apply func(*Appointment) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(id)
	if a == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := apply(a); err != nil {
		return err
	}
	s.persist()
	return nil
}

// MarkNoShow records a missed appointment. The entity method has no failure
// signal, so the snapshot is rewritten unconditionally once the appointment
// is found.
func (s *Scheduler) MarkNoShow(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.find(id)
	if a == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	a.MarkNoShow()
	s.persist()
	return nil
}

// Delete removes the appointment outright, regardless of status.
func (s *Scheduler) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.appts {
		if a.ID == id {
			s.appts = append(s.appts[:i], s.appts[i+1:]...)
			s.persist()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// conflict reports whether booking the clinician at t would collide with an
// existing slot. Both sources are checked: valid appointments (cancelled
// ones never block) and quarantined lines whose clinician field matches.
// A quarantined line with an unreadable date blocks every booking for that
// clinician: assuming the slot is taken is safer than risking a silent
// double-booking.
func (s *Scheduler) conflict(clinicianID string, t time.Time, excludeID string) error {
	for _, c := range s.appts {
		if c.ID == excludeID || c.ClinicianID != clinicianID || c.Status == Cancelled {
			continue
		}
		if slotContains(c.Time, t) {
			return fmt.Errorf("%w: appointment %s at %s", ErrConflict, c.ID, FormatTime(c.Time))
		}
	}
	for _, q := range s.quarantined {
		cid, ok := q.ClinicianID()
		if !ok || cid != clinicianID {
			continue
		}
		start, err := q.StartTime()
		if err != nil {
			return fmt.Errorf("%w: quarantined record %s has an unreadable date", ErrConflict, q.ID)
		}
		if slotContains(start, t) {
			return fmt.Errorf("%w: quarantined record %s at %s", ErrConflict, q.ID, FormatTime(start))
		}
	}
	return nil
}

// -- queries (copies, never live references) --

// Get returns a copy of the appointment with the given identifier.
func (s *Scheduler) Get(id string) (Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a := s.find(id); a != nil {
		return *a, nil
	}
	return Appointment{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// All returns a copy of every appointment.
func (s *Scheduler) All() []Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(*Appointment) bool { return true })
}

// ByPatient returns the appointments referencing the patient.
func (s *Scheduler) ByPatient(patientID string) []Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(a *Appointment) bool { return a.PatientID == patientID })
}

// ByClinician returns the appointments referencing the clinician.
func (s *Scheduler) ByClinician(clinicianID string) []Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(a *Appointment) bool { return a.ClinicianID == clinicianID })
}

// ByStatus returns the appointments currently in the given status.
func (s *Scheduler) ByStatus(st Status) []Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(a *Appointment) bool { return a.Status == st })
}

// InRange returns the appointments scheduled in [from, to], inclusive.
func (s *Scheduler) InRange(from, to time.Time) []Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inRange(from, to)
}

// Upcoming returns the pending and confirmed appointments within the next
// 24 hours.
func (s *Scheduler) Upcoming() []Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	limit := now.Add(24 * time.Hour)
	return s.filter(func(a *Appointment) bool {
		return a.Active() && !a.Time.Before(now) && !a.Time.After(limit)
	})
}

// Today returns the appointments scheduled on the current calendar day.
func (s *Scheduler) Today() []Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.inRange(start, start.Add(24*time.Hour-time.Second))
}

// Count returns the number of appointments in the collection.
func (s *Scheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appts)
}

// Quarantined returns a copy of the quarantined records held in memory.
func (s *Scheduler) Quarantined() []Quarantine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Quarantine, len(s.quarantined))
	copy(out, s.quarantined)
	return out
}

// PatientHasActive reports whether the patient has pending or confirmed
// appointments.
func (s *Scheduler) PatientHasActive(patientID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.appts {
		if a.PatientID == patientID && a.Active() {
			return true
		}
	}
	return false
}

// ClinicianHasActive reports whether the clinician has pending or confirmed
// appointments.
func (s *Scheduler) ClinicianHasActive(clinicianID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.appts {
		if a.ClinicianID == clinicianID && a.Active() {
			return true
		}
	}
	return false
}

// ResetCounter rewinds the identifier counter to its cold-start value.
// Administrative hook, intended for test isolation only.
func (s *Scheduler) ResetCounter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = 1
}

// -- internals (callers hold s.mu) --

func (s *Scheduler) find(id string) *Appointment {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	for _, a := range s.appts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (s *Scheduler) filter(keep func(*Appointment) bool) []Appointment {
	var out []Appointment
	for _, a := range s.appts {
		if keep(a) {
			out = append(out, *a)
		}
	}
	return out
}

func (s *Scheduler) inRange(from, to time.Time) []Appointment {
	return s.filter(func(a *Appointment) bool {
		return !a.Time.Before(from) && !a.Time.After(to)
	})
}

func (s *Scheduler) mintID() string {
	id := fmt.Sprintf("%s%04d", idPrefix, s.nextID)
	s.nextID++
	return id
}

// absorbID advances the counter past a persisted identifier.
func (s *Scheduler) absorbID(id string) {
	if !strings.HasPrefix(id, idPrefix) {
		return
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, idPrefix))
	if err != nil {
		return
	}
	if n >= s.nextID {
		s.nextID = n + 1
	}
}

// persist rewrites the snapshot after a successful mutation. A save failure
// does not undo the mutation; it is logged and the next successful save
// catches the disk copy up.
func (s *Scheduler) persist() {
	if err := s.store.Save(s.appts, s.quarantined); err != nil {
		s.log.Error().Err(err).Msg("appointment snapshot save failed")
	}
}
