package directory

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinica/clinica/internal/platform/flatfile"
)

// Directory files use day precision for dates.
const dateLayout = "2006-01-02"

// PatientTxtRepo stores patients one per line:
// cedula,firstName,lastName,phone,birthDate.
type PatientTxtRepo struct {
	path string
	log  zerolog.Logger
}

// NewPatientTxtRepo returns a repository backed by the file at path.
func NewPatientTxtRepo(path string, log zerolog.Logger) *PatientTxtRepo {
	return &PatientTxtRepo{path: path, log: log}
}

func (r *PatientTxtRepo) Save(patients []Patient) error {
	lines := make([]string, 0, len(patients))
	for _, p := range patients {
		lines = append(lines, strings.Join([]string{
			flatfile.Sanitize(p.ID),
			flatfile.Sanitize(p.FirstName),
			flatfile.Sanitize(p.LastName),
			flatfile.Sanitize(p.Phone),
			p.BirthDate.Format(dateLayout),
		}, ","))
	}
	if err := flatfile.WriteSnapshot(r.path, lines); err != nil {
		return fmt.Errorf("save patients: %w", err)
	}
	return nil
}

func (r *PatientTxtRepo) Load() ([]Patient, error) {
	lines, err := flatfile.ReadLines(r.path)
	if err != nil {
		return nil, fmt.Errorf("load patients: %w", err)
	}

	var patients []Patient
	for _, line := range lines {
		fields := strings.Split(line, ",")
		if len(fields) != 5 {
			r.log.Warn().Str("line", line).Msg("skipping malformed patient record")
			continue
		}
		birth, err := time.Parse(dateLayout, strings.TrimSpace(fields[4]))
		if err != nil {
			r.log.Warn().Str("line", line).Msg("skipping patient record with bad birth date")
			continue
		}
		patients = append(patients, Patient{
			ID:        strings.TrimSpace(fields[0]),
			FirstName: strings.TrimSpace(fields[1]),
			LastName:  strings.TrimSpace(fields[2]),
			Phone:     strings.TrimSpace(fields[3]),
			BirthDate: birth,
		})
	}
	return patients, nil
}

// ClinicianTxtRepo stores clinicians one per line:
// cedula,firstName,lastName,specialty,phone.
type ClinicianTxtRepo struct {
	path string
	log  zerolog.Logger
}

// NewClinicianTxtRepo returns a repository backed by the file at path.
func NewClinicianTxtRepo(path string, log zerolog.Logger) *ClinicianTxtRepo {
	return &ClinicianTxtRepo{path: path, log: log}
}

func (r *ClinicianTxtRepo) Save(clinicians []Clinician) error {
	lines := make([]string, 0, len(clinicians))
	for _, c := range clinicians {
		lines = append(lines, strings.Join([]string{
			flatfile.Sanitize(c.ID),
			flatfile.Sanitize(c.FirstName),
			flatfile.Sanitize(c.LastName),
			string(c.Specialty),
			flatfile.Sanitize(c.Phone),
		}, ","))
	}
	if err := flatfile.WriteSnapshot(r.path, lines); err != nil {
		return fmt.Errorf("save clinicians: %w", err)
	}
	return nil
}

func (r *ClinicianTxtRepo) Load() ([]Clinician, error) {
	lines, err := flatfile.ReadLines(r.path)
	if err != nil {
		return nil, fmt.Errorf("load clinicians: %w", err)
	}

	var clinicians []Clinician
	for _, line := range lines {
		fields := strings.Split(line, ",")
		if len(fields) != 5 {
			r.log.Warn().Str("line", line).Msg("skipping malformed clinician record")
			continue
		}
		specialty, ok := ParseSpecialty(fields[3])
		if !ok {
			r.log.Warn().Str("line", line).Msg("skipping clinician record with unknown specialty")
			continue
		}
		clinicians = append(clinicians, Clinician{
			ID:        strings.TrimSpace(fields[0]),
			FirstName: strings.TrimSpace(fields[1]),
			LastName:  strings.TrimSpace(fields[2]),
			Specialty: specialty,
			Phone:     strings.TrimSpace(fields[4]),
		})
	}
	return clinicians, nil
}
