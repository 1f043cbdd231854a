package appointment

import "github.com/clinica/clinica/internal/domain/directory"

// Store persists the appointment collection as a whole: valid records
// first, quarantined raw lines after them, rewritten in full on every save.
type Store interface {
	Load() ([]*Appointment, []Quarantine, error)
	Save(appts []*Appointment, quarantined []Quarantine) error
}

// Directory is the lookup contract the scheduler and the store validate
// references against. Implemented by directory.Service.
type Directory interface {
	FindPatient(id string) (directory.Patient, bool)
	PatientExists(id string) bool
	FindClinician(id string) (directory.Clinician, bool)
	ClinicianExists(id string) bool
}
