package directory

// PatientRepository persists the patient roster as a whole.
type PatientRepository interface {
	Load() ([]Patient, error)
	Save(patients []Patient) error
}

// ClinicianRepository persists the clinician roster as a whole.
type ClinicianRepository interface {
	Load() ([]Clinician, error)
	Save(clinicians []Clinician) error
}
