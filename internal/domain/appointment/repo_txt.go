package appointment

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clinica/clinica/internal/platform/flatfile"
)

// fieldCount is the shape of a well-formed appointment line:
// id,patientId,clinicianId,isoDateTime,reason,status.
const fieldCount = 6

// TxtStore persists appointments to a line-oriented text file. Lines that
// cannot be rebuilt into an Appointment are quarantined instead of dropped:
// they are logged, kept for conflict checks, and written back unchanged on
// the next save. One bad line never aborts the load.
type TxtStore struct {
	path string
	dir  Directory
	log  zerolog.Logger
}

// NewTxtStore returns a store backed by the file at path. The directory is
// consulted on load to validate patient and clinician references.
func NewTxtStore(path string, dir Directory, log zerolog.Logger) *TxtStore {
	return &TxtStore{path: path, dir: dir, log: log}
}

// Load reads the snapshot, returning the valid appointments (identifiers
// preserved from the file) and the quarantined lines in file order.
func (s *TxtStore) Load() ([]*Appointment, []Quarantine, error) {
	lines, err := flatfile.ReadLines(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("load appointments: %w", err)
	}

	var (
		appts       []*Appointment
		quarantined []Quarantine
	)
	for _, line := range lines {
		appt, cause := s.parseLine(line)
		if appt == nil {
			q := NewQuarantine(line, cause)
			s.log.Warn().
				Str("quarantine_id", q.ID.String()).
				Str("cause", cause).
				Msg("quarantined unreadable appointment record")
			quarantined = append(quarantined, q)
			continue
		}
		appts = append(appts, appt)
	}
	return appts, quarantined, nil
}

// parseLine rebuilds one Appointment. A nil result carries the quarantine
// cause instead.
func (s *TxtStore) parseLine(line string) (*Appointment, string) {
	fields := strings.Split(line, ",")
	if len(fields) < fieldCount {
		return nil, fmt.Sprintf("expected %d fields, got %d", fieldCount, len(fields))
	}

	when, err := ParseTime(strings.TrimSpace(fields[3]))
	if err != nil {
		return nil, fmt.Sprintf("bad date-time %q", strings.TrimSpace(fields[3]))
	}
	status, err := ParseStatus(strings.TrimSpace(fields[5]))
	if err != nil {
		return nil, fmt.Sprintf("unknown status %q", strings.TrimSpace(fields[5]))
	}

	patientID := strings.TrimSpace(fields[1])
	clinicianID := strings.TrimSpace(fields[2])
	if !s.dir.PatientExists(patientID) {
		return nil, fmt.Sprintf("patient %s not in directory", patientID)
	}
	if !s.dir.ClinicianExists(clinicianID) {
		return nil, fmt.Sprintf("clinician %s not in directory", clinicianID)
	}

	return &Appointment{
		ID:          strings.TrimSpace(fields[0]),
		PatientID:   patientID,
		ClinicianID: clinicianID,
		Reason:      strings.TrimSpace(fields[4]),
		Time:        when,
		Status:      status,
	}, ""
}

// Save rewrites the whole snapshot: every valid record, then every
// quarantined raw line byte-for-byte.
func (s *TxtStore) Save(appts []*Appointment, quarantined []Quarantine) error {
	lines := make([]string, 0, len(appts)+len(quarantined))
	for _, a := range appts {
		lines = append(lines, encodeLine(a))
	}
	for _, q := range quarantined {
		lines = append(lines, q.Raw)
	}
	if err := flatfile.WriteSnapshot(s.path, lines); err != nil {
		return fmt.Errorf("save appointments: %w", err)
	}
	return nil
}

func encodeLine(a *Appointment) string {
	return strings.Join([]string{
		flatfile.Sanitize(a.ID),
		flatfile.Sanitize(a.PatientID),
		flatfile.Sanitize(a.ClinicianID),
		FormatTime(a.Time),
		flatfile.Sanitize(a.Reason),
		a.Status.String(),
	}, ",")
}
