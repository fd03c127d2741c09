package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairydesk/internal/catalog"
	"github.com/mamadbah2/dairydesk/internal/domain/models"
)

func TestMilkYieldPayloadCoercesNumbers(t *testing.T) {
	spec := catalog.MilkYieldForm()

	payload := spec.Payload(map[string]string{
		"date":           "2024-04-01",
		"animal_id":      "COW-001",
		"morning_litres": "120.50",
		"evening_litres": "10",
		"notes":          "",
	}, 3)

	body, ok := payload.(map[string]any)
	require.True(t, ok)
	// The draft keeps the string the user typed; the wire carries the
	// number the server expects.
	assert.Equal(t, 120.5, body["morning_litres"])
	assert.Equal(t, 10.0, body["evening_litres"])
	assert.Equal(t, 3, body["supervisor_id"])
}

func TestPayloadPassesUnparseableValueThrough(t *testing.T) {
	spec := catalog.MilkYieldForm()

	payload := spec.Payload(map[string]string{"morning_litres": "a lot"}, 1)

	body := payload.(map[string]any)
	assert.Equal(t, "a lot", body["morning_litres"], "the server names the offending field")
}

func TestMilkYieldFormRoundTrip(t *testing.T) {
	spec := catalog.MilkYieldForm()

	rec := models.MilkYield{
		Date:          "2024-04-01",
		AnimalID:      "COW-002",
		MorningLitres: "9.00",
		EveningLitres: "8.50",
		Notes:         "slow milker",
	}
	draft := spec.FromRecord(rec)

	assert.Equal(t, "9.00", draft["morning_litres"])
	assert.Equal(t, "slow milker", draft["notes"])
	_, has := draft["total_litres"]
	assert.False(t, has, "derived fields never enter the draft")
}

func TestVaccinationSchemaAccessors(t *testing.T) {
	s := catalog.VaccinationSchema()

	rec := models.Vaccination{
		AnimalID:    "COW-001",
		VaccineName: "BVD",
		Disease:     "bovine viral diarrhoea",
		Date:        "2024-01-05",
		Status:      models.VaccinationCompleted,
	}

	assert.Equal(t, "2024-01-05", s.Date(rec))
	assert.Contains(t, s.Search(rec), "BVD")
	assert.Equal(t, models.VaccinationCompleted, s.Enums["status"](rec))
}

func TestFinanceSchemaEnumsAndSums(t *testing.T) {
	s := catalog.FinanceSchema()

	rec := models.FinanceEntry{EntryType: models.FinanceExpense, Amount: "42.50"}

	assert.Equal(t, models.FinanceExpense, s.Enums["entry_type"](rec))
	assert.Equal(t, "42.50", s.Sums["amount"](rec))
}

func TestVaccinationFormStatusEnum(t *testing.T) {
	spec := catalog.VaccinationForm()

	for _, field := range spec.Fields {
		if field.Name != "status" {
			continue
		}
		assert.ElementsMatch(t, []string{
			models.VaccinationCompleted,
			models.VaccinationScheduled,
			models.VaccinationOverdue,
		}, field.Enum)
		return
	}
	t.Fatal("status field missing from vaccination form")
}

func TestEndpointsCarryTrailingSlash(t *testing.T) {
	endpoints := []string{
		catalog.MilkYieldEndpoint,
		catalog.VaccinationEndpoint,
		catalog.CalfFeedingEndpoint,
		catalog.WeanedCalfEndpoint,
		catalog.FinanceEndpoint,
		catalog.HygieneEndpoint,
		catalog.ShiftEndpoint,
		catalog.NotificationEndpoint,
		catalog.UserEndpoint,
		catalog.AnimalEndpoint,
		catalog.BreedingEndpoint,
	}
	for _, e := range endpoints {
		assert.Regexp(t, `^/api/[a-z-]+/$`, e)
	}
}
