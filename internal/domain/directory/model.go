package directory

import (
	"strings"
	"time"
)

// Specialty is the clinical specialty a clinician practices.
type Specialty string

const (
	GeneralMedicine Specialty = "GENERAL_MEDICINE"
	Pediatrics      Specialty = "PEDIATRICS"
	Cardiology      Specialty = "CARDIOLOGY"
	Dermatology     Specialty = "DERMATOLOGY"
	Gynecology      Specialty = "GYNECOLOGY"
)

var specialtyDisplay = map[Specialty]string{
	GeneralMedicine: "General Medicine",
	Pediatrics:      "Pediatrics",
	Cardiology:      "Cardiology",
	Dermatology:     "Dermatology",
	Gynecology:      "Gynecology",
}

// ParseSpecialty resolves a wire name to a Specialty.
func ParseSpecialty(s string) (Specialty, bool) {
	sp := Specialty(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := specialtyDisplay[sp]
	return sp, ok
}

// Display returns the human-readable name of the specialty.
func (s Specialty) Display() string {
	if d, ok := specialtyDisplay[s]; ok {
		return d
	}
	return string(s)
}

// Patient is a person who can be scheduled for appointments. The national
// identity number (cedula) is the unique identifier.
type Patient struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
	BirthDate time.Time
}

// FullName returns first and last name joined.
func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Age returns the patient's age in whole years at the given instant.
func (p Patient) Age(now time.Time) int {
	if p.BirthDate.IsZero() {
		return 0
	}
	years := now.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// Valid reports whether every required field is present and the birth date
// lies in the past.
func (p Patient) Valid() bool {
	return strings.TrimSpace(p.ID) != "" &&
		strings.TrimSpace(p.FirstName) != "" &&
		strings.TrimSpace(p.LastName) != "" &&
		strings.TrimSpace(p.Phone) != "" &&
		!p.BirthDate.IsZero() &&
		p.BirthDate.Before(time.Now())
}

// Clinician is a medical professional being scheduled against. The cedula
// is the unique identifier.
type Clinician struct {
	ID        string
	FirstName string
	LastName  string
	Specialty Specialty
	Phone     string
}

// FullName returns the clinician's titled display name.
func (c Clinician) FullName() string {
	return "Dr. " + c.FirstName + " " + c.LastName
}

// Valid reports whether every required field is present and the specialty
// is a known one.
func (c Clinician) Valid() bool {
	_, known := specialtyDisplay[c.Specialty]
	return strings.TrimSpace(c.ID) != "" &&
		strings.TrimSpace(c.FirstName) != "" &&
		strings.TrimSpace(c.LastName) != "" &&
		strings.TrimSpace(c.Phone) != "" &&
		known
}
