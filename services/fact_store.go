package services

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"dental-chatbot-backend/logger"
	"dental-chatbot-backend/models"
	"dental-chatbot-backend/utils"
)

const (
	faqsFile      = "faqs.csv"
	doctorsFile   = "doctors.csv"
	hospitalsFile = "hospitals.csv"
	insuranceFile = "insurance.csv"

	tableSeparator = "\n\n"
)

// FactStore holds the clinic tables. It is built once and only read afterwards.
type FactStore struct {
	faqs      []models.FAQ
	doctors   []models.Doctor
	hospitals []models.Hospital
	insurance []models.Insurance
}

// NewFactStore copies the given tables into a new store.
func NewFactStore(faqs []models.FAQ, doctors []models.Doctor, hospitals []models.Hospital, insurance []models.Insurance) *FactStore {
	return &FactStore{
		faqs:      append([]models.FAQ(nil), faqs...),
		doctors:   append([]models.Doctor(nil), doctors...),
		hospitals: append([]models.Hospital(nil), hospitals...),
		insurance: append([]models.Insurance(nil), insurance...),
	}
}

// LoadFactStore reads the four clinic CSV files from dir. A missing file leaves
// its table empty.
func LoadFactStore(dir string, log logger.Logger) (*FactStore, error) {
	open := func(name string, parse func(io.Reader) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("clinic data file not found", map[string]interface{}{"path": path})
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		if err := parse(f); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return nil
	}

	var (
		faqs      []models.FAQ
		doctors   []models.Doctor
		hospitals []models.Hospital
		insurance []models.Insurance
		err       error
	)
	if err := open(faqsFile, func(r io.Reader) error { faqs, err = ParseFAQs(r); return err }); err != nil {
		return nil, err
	}
	if err := open(doctorsFile, func(r io.Reader) error { doctors, err = ParseDoctors(r); return err }); err != nil {
		return nil, err
	}
	if err := open(hospitalsFile, func(r io.Reader) error { hospitals, err = ParseHospitals(r); return err }); err != nil {
		return nil, err
	}
	if err := open(insuranceFile, func(r io.Reader) error { insurance, err = ParseInsurance(r); return err }); err != nil {
		return nil, err
	}

	log.Info("clinic data loaded", map[string]interface{}{
		"faqs":      len(faqs),
		"doctors":   len(doctors),
		"hospitals": len(hospitals),
		"insurance": len(insurance),
	})
	return NewFactStore(faqs, doctors, hospitals, insurance), nil
}

func ParseFAQs(r io.Reader) ([]models.FAQ, error) {
	rows, err := utils.ReadCSVRecords(r)
	if err != nil {
		return nil, err
	}
	out := make([]models.FAQ, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.FAQ{Question: row["Question"], Answer: row["Answer"]})
	}
	return out, nil
}

func ParseDoctors(r io.Reader) ([]models.Doctor, error) {
	rows, err := utils.ReadCSVRecords(r)
	if err != nil {
		return nil, err
	}
	out := make([]models.Doctor, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.Doctor{
			FirstName:      row["First Name"],
			LastName:       row["Last Name"],
			Specialization: row["Specialization"],
			DaysAvailable:  row["days_available"],
			DoctorID:       row["doctor_id"],
			Email:          row["email"],
			Gender:         row["gender"],
			ContactInfo:    row["contact_info"],
			HospitalID:     row["hospital_id"],
		})
	}
	return out, nil
}

func ParseHospitals(r io.Reader) ([]models.Hospital, error) {
	rows, err := utils.ReadCSVRecords(r)
	if err != nil {
		return nil, err
	}
	out := make([]models.Hospital, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.Hospital{
			HospitalID:       row["hospital_id"],
			Name:             row["hospital_name"],
			BranchLocation:   row["branch_location"],
			Address:          row["address"],
			OpenHours:        row["open_hours"],
			UrgentCare:       row["urgent_care"],
			Email:            row["email"],
			ContactInfo:      row["contact_info"],
			DoctorsAvailable: row["doctors_available"],
		})
	}
	return out, nil
}

func ParseInsurance(r io.Reader) ([]models.Insurance, error) {
	rows, err := utils.ReadCSVRecords(r)
	if err != nil {
		return nil, err
	}
	out := make([]models.Insurance, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.Insurance{
			ProviderName: row["insurance provider Name"],
			CoverageType: row["coverage_type"],
			Status:       row["insurance_status"],
			InsuranceID:  row["insurance_id"],
			MemberID:     row["insurance_member_id"],
			PolicyID:     row["policy_id"],
			ValidFrom:    row["valid_from"],
			ValidTo:      row["valid_to"],
			PatientID:    row["patient_id"],
		})
	}
	return out, nil
}

func (s *FactStore) FAQs() []models.FAQ            { return s.faqs }
func (s *FactStore) Doctors() []models.Doctor      { return s.doctors }
func (s *FactStore) Hospitals() []models.Hospital  { return s.hospitals }
func (s *FactStore) Insurance() []models.Insurance { return s.insurance }

type textRenderer interface {
	Text() string
}

func renderTable[T textRenderer](rows []T) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = r.Text()
	}
	return strings.Join(parts, tableSeparator)
}

func (s *FactStore) FAQsText() string      { return renderTable(s.faqs) }
func (s *FactStore) DoctorsText() string   { return renderTable(s.doctors) }
func (s *FactStore) HospitalsText() string { return renderTable(s.hospitals) }
func (s *FactStore) InsuranceText() string { return renderTable(s.insurance) }

// DoctorsBySpecialty returns display names of doctors whose specialization
// equals specialty, ignoring case.
func (s *FactStore) DoctorsBySpecialty(specialty string) []string {
	var names []string
	for _, d := range s.doctors {
		if strings.EqualFold(d.Specialization, specialty) {
			names = append(names, d.DisplayName())
		}
	}
	return names
}

// AvailableDays looks up a dentist by display name ("Dr. First Last") and
// returns their working days, or nil when no doctor matches exactly.
func (s *FactStore) AvailableDays(dentist string) []string {
	name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(dentist), "Dr. "))
	first, last, _ := strings.Cut(name, " ")
	for _, d := range s.doctors {
		if d.FirstName == first && d.LastName == last {
			return d.Days()
		}
	}
	return nil
}

func (s *FactStore) DentistNames() []string {
	names := make([]string, 0, len(s.doctors))
	for _, d := range s.doctors {
		names = append(names, d.DisplayName())
	}
	return names
}

// IsInsuranceValid reports whether any record for provider is active.
func (s *FactStore) IsInsuranceValid(provider string) bool {
	for _, ins := range s.insurance {
		if strings.EqualFold(ins.ProviderName, provider) && ins.IsActive() {
			return true
		}
	}
	return false
}

// Documents renders every record as an embedding source document.
func (s *FactStore) Documents() []models.SourceDocument {
	docs := make([]models.SourceDocument, 0, len(s.faqs)+len(s.doctors)+len(s.hospitals)+len(s.insurance))
	for _, f := range s.faqs {
		docs = append(docs, models.SourceDocument{
			Text: f.Text(),
			Metadata: map[string]interface{}{
				"source_type": "faq",
				"question":    f.Question,
			},
		})
	}
	for _, d := range s.doctors {
		docs = append(docs, models.SourceDocument{
			Text: d.Text(),
			Metadata: map[string]interface{}{
				"source_type":    "doctor",
				"first_name":     d.FirstName,
				"last_name":      d.LastName,
				"specialization": d.Specialization,
			},
		})
	}
	for _, h := range s.hospitals {
		docs = append(docs, models.SourceDocument{
			Text: h.Text(),
			Metadata: map[string]interface{}{
				"source_type":     "hospital",
				"hospital_name":   h.Name,
				"branch_location": h.BranchLocation,
			},
		})
	}
	for _, ins := range s.insurance {
		docs = append(docs, models.SourceDocument{
			Text: ins.Text(),
			Metadata: map[string]interface{}{
				"source_type":   "insurance",
				"provider_name": ins.ProviderName,
				"coverage_type": ins.CoverageType,
			},
		})
	}
	return docs
}
