package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinica/clinica/internal/config"
	"github.com/clinica/clinica/internal/domain/appointment"
	"github.com/clinica/clinica/internal/domain/directory"
)

func main() {
	root := &cobra.Command{
		Use:           "clinica",
		Short:         "Clinic appointment scheduling engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(listCmd(), quarantineCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	directory *directory.Service
	scheduler *appointment.Scheduler
}

func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger = logger.Level(level)

	dir, err := directory.NewService(
		directory.NewPatientTxtRepo(cfg.PatientsPath(), logger),
		directory.NewClinicianTxtRepo(cfg.CliniciansPath(), logger),
		logger,
	)
	if err != nil {
		return nil, err
	}

	store := appointment.NewTxtStore(cfg.AppointmentsPath(), dir, logger)
	sched, err := appointment.NewScheduler(store, dir, logger)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, log: logger, directory: dir, scheduler: sched}, nil
}

func listCmd() *cobra.Command {
	var (
		patientID   string
		clinicianID string
		status      string
		today       bool
		upcoming    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}

			var appts []appointment.Appointment
			switch {
			case patientID != "":
				appts = a.scheduler.ByPatient(patientID)
			case clinicianID != "":
				appts = a.scheduler.ByClinician(clinicianID)
			case status != "":
				st, err := appointment.ParseStatus(status)
				if err != nil {
					return err
				}
				appts = a.scheduler.ByStatus(st)
			case today:
				appts = a.scheduler.Today()
			case upcoming:
				appts = a.scheduler.Upcoming()
			default:
				appts = a.scheduler.All()
			}

			if len(appts) == 0 {
				fmt.Println("No appointments.")
				return nil
			}
			for _, appt := range appts {
				fmt.Println(describe(a.directory, appt))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&patientID, "patient", "", "Filter by patient cedula")
	cmd.Flags().StringVar(&clinicianID, "clinician", "", "Filter by clinician cedula")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (PENDING, CONFIRMED, ...)")
	cmd.Flags().BoolVar(&today, "today", false, "Only today's appointments")
	cmd.Flags().BoolVar(&upcoming, "upcoming", false, "Only pending/confirmed appointments in the next 24h")
	return cmd
}

func describe(dir *directory.Service, appt appointment.Appointment) string {
	patient := appt.PatientID
	if p, ok := dir.FindPatient(appt.PatientID); ok {
		patient = fmt.Sprintf("%s (%s)", p.FullName(), p.ID)
	}
	clinician := appt.ClinicianID
	if c, ok := dir.FindClinician(appt.ClinicianID); ok {
		clinician = fmt.Sprintf("%s (%s, %s)", c.FullName(), c.ID, c.Specialty.Display())
	}
	return fmt.Sprintf("%s  %s  %-9s  %s with %s: %s",
		appt.ID, appointment.FormatTime(appt.Time), appt.Status, patient, clinician, appt.Reason)
}

func quarantineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quarantine",
		Short: "List stored appointment lines that could not be parsed",
		Long: "Quarantined lines are preserved byte-for-byte in the snapshot and keep\n" +
			"blocking their clinician's slots until repaired or removed by hand.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}

			quarantined := a.scheduler.Quarantined()
			if len(quarantined) == 0 {
				fmt.Println("Quarantine is empty.")
				return nil
			}
			for _, q := range quarantined {
				fmt.Printf("%s  cause: %s\n  %s\n", q.ID, q.Cause, q.Raw)
			}
			fmt.Printf("%d record(s) need manual reconciliation in %s\n",
				len(quarantined), a.cfg.AppointmentsPath())
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Register demo patients, clinicians, and appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}

			patients := []directory.Patient{
				{ID: "900123456", FirstName: "Ana", LastName: "Rojas", Phone: "3001234567", BirthDate: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)},
				{ID: "900654321", FirstName: "Luis", LastName: "Prada", Phone: "3200000000", BirthDate: time.Date(1985, 2, 3, 0, 0, 0, 0, time.UTC)},
			}
			for _, p := range patients {
				if err := a.directory.RegisterPatient(p); err != nil && !errors.Is(err, directory.ErrDuplicateID) {
					return err
				}
			}

			clinicians := []directory.Clinician{
				{ID: "800456789", FirstName: "Marta", LastName: "Gil", Specialty: directory.Cardiology, Phone: "3109876543"},
				{ID: "800111222", FirstName: "Jorge", LastName: "Soto", Specialty: directory.GeneralMedicine, Phone: "3151112223"},
			}
			for _, c := range clinicians {
				if err := a.directory.RegisterClinician(c); err != nil && !errors.Is(err, directory.ErrDuplicateID) {
					return err
				}
			}

			slot := time.Now().Add(48 * time.Hour).Truncate(time.Minute)
			demo := []*appointment.Appointment{
				{PatientID: "900123456", ClinicianID: "800456789", Reason: "Consulta general", Time: slot},
				{PatientID: "900654321", ClinicianID: "800111222", Reason: "Control anual", Time: slot.Add(time.Hour)},
			}
			for _, appt := range demo {
				if err := a.scheduler.Create(appt); err != nil {
					if errors.Is(err, appointment.ErrConflict) {
						a.log.Warn().Str("clinician", appt.ClinicianID).Msg("seed slot already taken, skipping")
						continue
					}
					return err
				}
				fmt.Printf("Booked %s\n", appt.ID)
			}

			fmt.Printf("Seeded %d patients, %d clinicians, %d appointments in %s\n",
				a.directory.CountPatients(), a.directory.CountClinicians(),
				a.scheduler.Count(), a.cfg.DataDir)
			return nil
		},
	}
}
