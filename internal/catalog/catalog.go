// Package catalog declares every dashboard screen: the entity's endpoint,
// its filter/summary schema and its form layout. Screens are pure
// instantiations of the generic controllers, so adding an entity means
// adding one descriptor here and nothing else.
package catalog

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Endpoints of the backend REST API, one collection per screen.
const (
	MilkYieldEndpoint    = "/api/milk-yields/"
	VaccinationEndpoint  = "/api/vaccinations/"
	CalfFeedingEndpoint  = "/api/calf-feedings/"
	WeanedCalfEndpoint   = "/api/weaned-calves/"
	FinanceEndpoint      = "/api/finance-entries/"
	HygieneEndpoint      = "/api/hygiene-checks/"
	ShiftEndpoint        = "/api/shift-assignments/"
	NotificationEndpoint = "/api/notifications/"
	UserEndpoint         = "/api/users/"
	AnimalEndpoint       = "/api/animals/"
	BreedingEndpoint     = "/api/breeding-calving-records/"
)

// today returns the seed date for add-mode drafts.
func today() string {
	return time.Now().Format("2006-01-02")
}

// num coerces a draft decimal string back to the number the server expects.
// Unparseable input is passed through untouched so the server can name the
// offending field in its validation payload.
func num(value string) any {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return value
	}
	f, _ := d.Float64()
	return f
}

func itoa(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}
