// Package directory manages the patient and clinician rosters and exposes
// the lookup contract the appointment scheduler validates against.
package directory

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidRecord     = errors.New("record is missing required fields")
	ErrDuplicateID       = errors.New("a record with this cedula already exists")
	ErrPatientNotFound   = errors.New("patient not found")
	ErrClinicianNotFound = errors.New("clinician not found")
)

// Service owns the in-memory rosters. Every successful mutation rewrites
// the backing snapshot. Lookup methods return copies.
type Service struct {
	mu         sync.Mutex
	patients   []Patient
	clinicians []Clinician
	patientRep PatientRepository
	clinRep    ClinicianRepository
	log        zerolog.Logger
}

// NewService loads both rosters and returns a ready Service.
func NewService(patients PatientRepository, clinicians ClinicianRepository, log zerolog.Logger) (*Service, error) {
	ps, err := patients.Load()
	if err != nil {
		return nil, err
	}
	cs, err := clinicians.Load()
	if err != nil {
		return nil, err
	}
	return &Service{
		patients:   ps,
		clinicians: cs,
		patientRep: patients,
		clinRep:    clinicians,
		log:        log,
	}, nil
}

// -- Patients --

func (s *Service) RegisterPatient(p Patient) error {
	if !p.Valid() {
		return fmt.Errorf("%w: patient %q", ErrInvalidRecord, p.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.patientIndex(p.ID) >= 0 {
		return fmt.Errorf("%w: patient %s", ErrDuplicateID, p.ID)
	}
	s.patients = append(s.patients, p)
	s.persistPatients()
	return nil
}

func (s *Service) UpdatePatient(id string, p Patient) error {
	if !p.Valid() {
		return fmt.Errorf("%w: patient %q", ErrInvalidRecord, p.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.patientIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPatientNotFound, id)
	}
	p.ID = id
	s.patients[i] = p
	s.persistPatients()
	return nil
}

func (s *Service) RemovePatient(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.patientIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPatientNotFound, id)
	}
	s.patients = append(s.patients[:i], s.patients[i+1:]...)
	s.persistPatients()
	return nil
}

// FindPatient returns a copy of the patient with the given cedula.
func (s *Service) FindPatient(id string) (Patient, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.patientIndex(id); i >= 0 {
		return s.patients[i], true
	}
	return Patient{}, false
}

// PatientExists reports whether a patient with the given cedula is known.
func (s *Service) PatientExists(id string) bool {
	_, ok := s.FindPatient(id)
	return ok
}

// SearchPatientsByName returns patients whose name contains the query,
// case-insensitively.
func (s *Service) SearchPatientsByName(query string) []Patient {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Patient
	for _, p := range s.patients {
		if strings.Contains(strings.ToLower(p.FullName()), q) {
			out = append(out, p)
		}
	}
	return out
}

// Patients returns a copy of the roster.
func (s *Service) Patients() []Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Patient, len(s.patients))
	copy(out, s.patients)
	return out
}

func (s *Service) CountPatients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.patients)
}

// -- Clinicians --

func (s *Service) RegisterClinician(c Clinician) error {
	if !c.Valid() {
		return fmt.Errorf("%w: clinician %q", ErrInvalidRecord, c.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clinicianIndex(c.ID) >= 0 {
		return fmt.Errorf("%w: clinician %s", ErrDuplicateID, c.ID)
	}
	s.clinicians = append(s.clinicians, c)
	s.persistClinicians()
	return nil
}

func (s *Service) UpdateClinician(id string, c Clinician) error {
	if !c.Valid() {
		return fmt.Errorf("%w: clinician %q", ErrInvalidRecord, c.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.clinicianIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrClinicianNotFound, id)
	}
	c.ID = id
	s.clinicians[i] = c
	s.persistClinicians()
	return nil
}

func (s *Service) RemoveClinician(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.clinicianIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrClinicianNotFound, id)
	}
	s.clinicians = append(s.clinicians[:i], s.clinicians[i+1:]...)
	s.persistClinicians()
	return nil
}

// FindClinician returns a copy of the clinician with the given cedula.
func (s *Service) FindClinician(id string) (Clinician, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.clinicianIndex(id); i >= 0 {
		return s.clinicians[i], true
	}
	return Clinician{}, false
}

// ClinicianExists reports whether a clinician with the given cedula is known.
func (s *Service) ClinicianExists(id string) bool {
	_, ok := s.FindClinician(id)
	return ok
}

// CliniciansBySpecialty returns the clinicians practicing the specialty.
func (s *Service) CliniciansBySpecialty(sp Specialty) []Clinician {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Clinician
	for _, c := range s.clinicians {
		if c.Specialty == sp {
			out = append(out, c)
		}
	}
	return out
}

// Clinicians returns a copy of the roster.
func (s *Service) Clinicians() []Clinician {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Clinician, len(s.clinicians))
	copy(out, s.clinicians)
	return out
}

func (s *Service) CountClinicians() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clinicians)
}

// -- internals --

func (s *Service) patientIndex(id string) int {
	for i, p := range s.patients {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) clinicianIndex(id string) int {
	for i, c := range s.clinicians {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Save failures leave the in-memory roster ahead of the disk copy until the
// next successful save.
func (s *Service) persistPatients() {
	if err := s.patientRep.Save(s.patients); err != nil {
		s.log.Error().Err(err).Msg("patient snapshot save failed")
	}
}

func (s *Service) persistClinicians() {
	if err := s.clinRep.Save(s.clinicians); err != nil {
		s.log.Error().Err(err).Msg("clinician snapshot save failed")
	}
}
