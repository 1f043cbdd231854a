package appointment

import (
	"errors"
	"testing"
	"time"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := ParseTime(s)
	if err != nil {
		t.Fatalf("ParseTime(%q): %v", s, err)
	}
	return ts
}

func TestConfirmTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		wantErr bool
		want    Status
	}{
		{Pending, false, Confirmed},
		{Confirmed, true, Confirmed},
		{Cancelled, true, Cancelled},
		{Completed, true, Completed},
		{NoShow, true, NoShow},
	}
	for _, c := range cases {
		a := &Appointment{Status: c.from}
		err := a.Confirm()
		if (err != nil) != c.wantErr {
			t.Errorf("Confirm from %s: err = %v, wantErr %v", c.from, err, c.wantErr)
		}
		if err != nil && !errors.Is(err, ErrIllegalTransition) {
			t.Errorf("Confirm from %s: err = %v, want ErrIllegalTransition", c.from, err)
		}
		if a.Status != c.want {
			t.Errorf("Confirm from %s: status = %s, want %s", c.from, a.Status, c.want)
		}
	}
}

func TestCancelTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		wantErr bool
		want    Status
	}{
		{Pending, false, Cancelled},
		{Confirmed, false, Cancelled},
		{Cancelled, false, Cancelled},
		{NoShow, false, Cancelled},
		{Completed, true, Completed},
	}
	for _, c := range cases {
		a := &Appointment{Status: c.from}
		err := a.Cancel()
		if (err != nil) != c.wantErr {
			t.Errorf("Cancel from %s: err = %v, wantErr %v", c.from, err, c.wantErr)
		}
		if a.Status != c.want {
			t.Errorf("Cancel from %s: status = %s, want %s", c.from, a.Status, c.want)
		}
	}
}

func TestCompleteTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		wantErr bool
		want    Status
	}{
		{Confirmed, false, Completed},
		{Pending, true, Pending},
		{Cancelled, true, Cancelled},
		{Completed, true, Completed},
		{NoShow, true, NoShow},
	}
	for _, c := range cases {
		a := &Appointment{Status: c.from}
		err := a.Complete()
		if (err != nil) != c.wantErr {
			t.Errorf("Complete from %s: err = %v, wantErr %v", c.from, err, c.wantErr)
		}
		if a.Status != c.want {
			t.Errorf("Complete from %s: status = %s, want %s", c.from, a.Status, c.want)
		}
	}
}

func TestMarkNoShow(t *testing.T) {
	cases := []struct {
		from Status
		want Status
	}{
		{Pending, NoShow},
		{Confirmed, NoShow},
		{Cancelled, Cancelled},
		{Completed, Completed},
		{NoShow, NoShow},
	}
	for _, c := range cases {
		a := &Appointment{Status: c.from}
		a.MarkNoShow()
		if a.Status != c.want {
			t.Errorf("MarkNoShow from %s: status = %s, want %s", c.from, a.Status, c.want)
		}
	}
}

func TestEditable(t *testing.T) {
	if !(&Appointment{Status: Pending}).Editable() {
		t.Error("pending appointment should be editable")
	}
	for _, st := range []Status{Confirmed, Cancelled, Completed, NoShow} {
		if (&Appointment{Status: st}).Editable() {
			t.Errorf("%s appointment should not be editable", st)
		}
	}
}

func TestValid(t *testing.T) {
	base := Appointment{
		PatientID:   "900123456",
		ClinicianID: "800456789",
		Reason:      "Consulta general",
		Time:        mustTime(t, "2025-03-15T09:30"),
	}
	if !base.Valid() {
		t.Fatal("base appointment should be valid")
	}

	cases := []struct {
		name   string
		mutate func(*Appointment)
	}{
		{"no patient", func(a *Appointment) { a.PatientID = "" }},
		{"no clinician", func(a *Appointment) { a.ClinicianID = "" }},
		{"blank reason", func(a *Appointment) { a.Reason = "   " }},
		{"zero time", func(a *Appointment) { a.Time = time.Time{} }},
	}
	for _, c := range cases {
		a := base
		c.mutate(&a)
		if a.Valid() {
			t.Errorf("%s: appointment should be invalid", c.name)
		}
	}
}

func TestStatusRoundTrip(t *testing.T) {
	for _, st := range []Status{Pending, Confirmed, Cancelled, Completed, NoShow} {
		parsed, err := ParseStatus(st.String())
		if err != nil {
			t.Fatalf("ParseStatus(%s): %v", st, err)
		}
		if parsed != st {
			t.Errorf("round trip of %s gave %s", st, parsed)
		}
	}
	if _, err := ParseStatus("PENDIENTE"); err == nil {
		t.Error("ParseStatus should reject tokens outside the wire vocabulary")
	}
}

func TestSlotContains(t *testing.T) {
	start := mustTime(t, "2025-03-15T09:30")
	cases := []struct {
		at   string
		want bool
	}{
		{"2025-03-15T09:30", true},
		{"2025-03-15T09:45", true},
		{"2025-03-15T09:59", true},
		{"2025-03-15T10:00", false}, // upper bound is exclusive
		{"2025-03-15T09:29", false},
	}
	for _, c := range cases {
		if got := slotContains(start, mustTime(t, c.at)); got != c.want {
			t.Errorf("slotContains(09:30, %s) = %v, want %v", c.at, got, c.want)
		}
	}
}

func TestParseTimeLayouts(t *testing.T) {
	minute, err := ParseTime("2025-03-15T09:30")
	if err != nil {
		t.Fatalf("minute precision: %v", err)
	}
	second, err := ParseTime("2025-03-15T09:30:00")
	if err != nil {
		t.Fatalf("second precision: %v", err)
	}
	if !minute.Equal(second) {
		t.Errorf("layouts disagree: %v vs %v", minute, second)
	}
	if FormatTime(second) != "2025-03-15T09:30" {
		t.Errorf("FormatTime = %q, want minute precision", FormatTime(second))
	}
	if _, err := ParseTime("15/03/2025 09:30"); err == nil {
		t.Error("ParseTime should reject non-ISO input")
	}
}
