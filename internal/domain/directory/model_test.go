package directory

import (
	"testing"
	"time"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestParseSpecialty(t *testing.T) {
	sp, ok := ParseSpecialty("cardiology")
	if !ok || sp != Cardiology {
		t.Errorf("ParseSpecialty(cardiology) = %v, %v", sp, ok)
	}
	if _, ok := ParseSpecialty("ASTROLOGY"); ok {
		t.Error("ParseSpecialty should reject unknown specialties")
	}
	if Pediatrics.Display() != "Pediatrics" {
		t.Errorf("Display = %q", Pediatrics.Display())
	}
}

func TestPatientAge(t *testing.T) {
	p := Patient{BirthDate: date(t, "2000-06-15")}
	if got := p.Age(date(t, "2025-06-14")); got != 24 {
		t.Errorf("age the day before the birthday = %d, want 24", got)
	}
	if got := p.Age(date(t, "2025-06-15")); got != 25 {
		t.Errorf("age on the birthday = %d, want 25", got)
	}
	if got := (Patient{}).Age(date(t, "2025-06-15")); got != 0 {
		t.Errorf("age without birth date = %d, want 0", got)
	}
}

func TestPatientValid(t *testing.T) {
	base := Patient{
		ID:        "900123456",
		FirstName: "Ana",
		LastName:  "Rojas",
		Phone:     "3001234567",
		BirthDate: date(t, "1990-01-01"),
	}
	if !base.Valid() {
		t.Fatal("base patient should be valid")
	}

	missingID := base
	missingID.ID = " "
	if missingID.Valid() {
		t.Error("patient without cedula should be invalid")
	}

	futureBirth := base
	futureBirth.BirthDate = time.Now().AddDate(1, 0, 0)
	if futureBirth.Valid() {
		t.Error("patient born in the future should be invalid")
	}
}

func TestClinicianValid(t *testing.T) {
	base := Clinician{
		ID:        "800456789",
		FirstName: "Marta",
		LastName:  "Gil",
		Specialty: Dermatology,
		Phone:     "3109876543",
	}
	if !base.Valid() {
		t.Fatal("base clinician should be valid")
	}
	if base.FullName() != "Dr. Marta Gil" {
		t.Errorf("FullName = %q", base.FullName())
	}

	unknown := base
	unknown.Specialty = "ASTROLOGY"
	if unknown.Valid() {
		t.Error("clinician with unknown specialty should be invalid")
	}
}
