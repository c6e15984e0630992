package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dental-chatbot-backend/logger"
	"dental-chatbot-backend/models"
)

func TestParseDoctors(t *testing.T) {
	input := "First Name,Last Name,Specialization,days_available,doctor_id,email,gender,contact_info,hospital_id\n" +
		"Jane,Lee,Orthodontics,\"Monday,Tuesday\",D1,jane@smile.test,F,555-0100,H1\n" +
		"\n" +
		"Omar,Haddad,Endodontics,Wednesday\n"

	doctors, err := ParseDoctors(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doctors, 2)

	assert.Equal(t, models.Doctor{
		FirstName:      "Jane",
		LastName:       "Lee",
		Specialization: "Orthodontics",
		DaysAvailable:  "Monday,Tuesday",
		DoctorID:       "D1",
		Email:          "jane@smile.test",
		Gender:         "F",
		ContactInfo:    "555-0100",
		HospitalID:     "H1",
	}, doctors[0])
	assert.Equal(t, "Wednesday", doctors[1].DaysAvailable)
	assert.Empty(t, doctors[1].HospitalID)
}

func TestParseInsuranceAndHospitals(t *testing.T) {
	ins, err := ParseInsurance(strings.NewReader(
		"insurance provider Name,coverage_type,insurance_status\nDelta Dental,PPO,Yes\n"))
	require.NoError(t, err)
	require.Len(t, ins, 1)
	assert.Equal(t, "Delta Dental", ins[0].ProviderName)
	assert.True(t, ins[0].IsActive())

	hospitals, err := ParseHospitals(strings.NewReader(
		"hospital_id,hospital_name,branch_location,address,open_hours,urgent_care\nH1,SmileSmart,Downtown,1 Main St,8-6,Yes\n"))
	require.NoError(t, err)
	require.Len(t, hospitals, 1)
	assert.Equal(t, "Hospital: SmileSmart, Location: Downtown, Address: 1 Main St, Hours: 8-6, Urgent Care: Yes", hospitals[0].Text())
}

func TestLoadFactStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "faqs.csv"),
		[]byte("Question,Answer\nDo you take walk-ins?,Yes\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doctors.csv"),
		[]byte("First Name,Last Name,Specialization,days_available\nJane,Lee,Orthodontics,Monday\n"), 0o600))

	store, err := LoadFactStore(dir, logger.NewTestLogger(t))
	require.NoError(t, err)

	assert.Len(t, store.FAQs(), 1)
	assert.Len(t, store.Doctors(), 1)
	assert.Empty(t, store.Hospitals())
	assert.Empty(t, store.Insurance())
}

func TestFactStore_Renderings(t *testing.T) {
	facts := newTestFacts()

	assert.Equal(t,
		"Question: Do you offer teeth whitening?\nAnswer: Yes, in-office whitening takes about an hour.\n\n"+
			"Question: Is parking available?\nAnswer: Free parking is available behind the clinic.",
		facts.FAQsText())
	assert.True(t, strings.HasPrefix(facts.DoctorsText(), "Dr. Jane Lee, Specialization: Orthodontics, Available: Monday, Tuesday,Friday\n\n"))
	assert.Equal(t, "Provider: Delta Dental, Type: PPO, Status: Yes\n\nProvider: Cigna, Type: HMO, Status: No", facts.InsuranceText())
}

func TestFactStore_DoctorsBySpecialty(t *testing.T) {
	facts := newTestFacts()

	assert.Equal(t, []string{"Dr. Jane Lee", "Dr. Priya Nair"}, facts.DoctorsBySpecialty("ORTHODONTICS"))
	assert.Equal(t, []string{"Dr. Omar Haddad"}, facts.DoctorsBySpecialty("Endodontics"))
	assert.Empty(t, facts.DoctorsBySpecialty("Periodontics"))
}

func TestFactStore_AvailableDays(t *testing.T) {
	facts := newTestFacts()

	assert.Equal(t, []string{"Monday", "Tuesday", "Friday"}, facts.AvailableDays("Dr. Jane Lee"))
	assert.Equal(t, []string{"Wednesday"}, facts.AvailableDays("Omar Haddad"))
	assert.Nil(t, facts.AvailableDays("Dr. Jane"))
	assert.Nil(t, facts.AvailableDays("Dr. jane lee"))
}

func TestFactStore_IsInsuranceValid(t *testing.T) {
	facts := newTestFacts()

	assert.True(t, facts.IsInsuranceValid("delta dental"))
	assert.False(t, facts.IsInsuranceValid("Cigna"))
	assert.False(t, facts.IsInsuranceValid("Aetna"))
}

func TestFactStore_Documents(t *testing.T) {
	facts := newTestFacts()

	docs := facts.Documents()
	require.Len(t, docs, 9)

	assert.Equal(t, "faq", docs[0].Metadata["source_type"])
	assert.Equal(t, facts.FAQs()[0].Text(), docs[0].Text)

	doctor := docs[2]
	assert.Equal(t, "doctor", doctor.Metadata["source_type"])
	assert.Equal(t, "Lee", doctor.Metadata["last_name"])
	assert.Equal(t, "insurance", docs[8].Metadata["source_type"])
}

func TestNewFactStore_CopiesTables(t *testing.T) {
	faqs := []models.FAQ{{Question: "Q", Answer: "A"}}
	store := NewFactStore(faqs, nil, nil, nil)

	faqs[0].Question = "changed"
	assert.Equal(t, "Q", store.FAQs()[0].Question)
}
