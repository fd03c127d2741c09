// Package reporting produces the daily farm summary: the same aggregates
// the dashboard's list screens show, fetched through the same client and
// appended as one row to the farm's report spreadsheet.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairydesk/internal/catalog"
	"github.com/mamadbah2/dairydesk/internal/controller"
	"github.com/mamadbah2/dairydesk/internal/domain/models"
	"github.com/mamadbah2/dairydesk/internal/repository/sheets"
	"github.com/mamadbah2/dairydesk/pkg/clients/dairy"
)

// DailySummary aggregates one day of production and money movement.
type DailySummary struct {
	Date          string
	MilkLitres    decimal.Decimal
	BestYield     decimal.Decimal
	MilkEntries   int
	Income        decimal.Decimal
	Expenses      decimal.Decimal
	CalfFeedings  int
	HygieneChecks int
}

// Service builds daily summaries and pushes them to the report sink.
type Service struct {
	client *dairy.Client
	sink   sheets.Repository
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(client *dairy.Client, sink sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, sink: sink, logger: logger}
}

// Summarize computes the summary for one calendar day by running the list
// controllers with a date filter pinned to that day.
func (s *Service) Summarize(ctx context.Context, day time.Time) (DailySummary, error) {
	date := day.Format(models.DateLayout)
	filter := controller.Filters{StartDate: date, EndDate: date}

	milk := controller.NewList(catalog.MilkYieldSchema(), s.client)
	if err := milk.Fetch(ctx, ""); err != nil {
		return DailySummary{}, fmt.Errorf("fetch milk yields: %w", err)
	}
	milk.SetFilters(filter)
	milkSummary := milk.Summary()

	finance := controller.NewList(catalog.FinanceSchema(), s.client)
	if err := finance.Fetch(ctx, ""); err != nil {
		return DailySummary{}, fmt.Errorf("fetch finance entries: %w", err)
	}
	finance.SetFilters(filter.WithEnum("entry_type", models.FinanceIncome))
	income := finance.Summary().Total("amount")
	finance.SetFilters(filter.WithEnum("entry_type", models.FinanceExpense))
	expenses := finance.Summary().Total("amount")

	feedings := controller.NewList(catalog.CalfFeedingSchema(), s.client)
	if err := feedings.Fetch(ctx, ""); err != nil {
		return DailySummary{}, fmt.Errorf("fetch calf feedings: %w", err)
	}
	feedings.SetFilters(filter)

	hygiene := controller.NewList(catalog.HygieneSchema(), s.client)
	if err := hygiene.Fetch(ctx, ""); err != nil {
		return DailySummary{}, fmt.Errorf("fetch hygiene checks: %w", err)
	}
	hygiene.SetFilters(filter)

	return DailySummary{
		Date:          date,
		MilkLitres:    milkSummary.Total("total_litres"),
		BestYield:     milkSummary.Max("total_litres"),
		MilkEntries:   milkSummary.Count,
		Income:        income,
		Expenses:      expenses,
		CalfFeedings:  len(feedings.Visible()),
		HygieneChecks: len(hygiene.Visible()),
	}, nil
}

// Publish appends the summary as one spreadsheet row.
func (s *Service) Publish(ctx context.Context, summary DailySummary) error {
	row := []interface{}{
		summary.Date,
		summary.MilkLitres.String(),
		summary.BestYield.String(),
		summary.MilkEntries,
		summary.Income.String(),
		summary.Expenses.String(),
		summary.CalfFeedings,
		summary.HygieneChecks,
	}
	if err := s.sink.AppendRow(ctx, row); err != nil {
		return fmt.Errorf("publish daily summary: %w", err)
	}

	s.logger.Info("daily summary published",
		zap.String("date", summary.Date),
		zap.String("milk_litres", summary.MilkLitres.String()))
	return nil
}

// Run produces and publishes the summary for the given day.
func (s *Service) Run(ctx context.Context, day time.Time) error {
	summary, err := s.Summarize(ctx, day)
	if err != nil {
		return err
	}
	return s.Publish(ctx, summary)
}
