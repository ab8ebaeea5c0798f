package analytics

import (
	"context"
	"time"

	"github.com/angelmondragon/yahipe-backend/internal/catalog"
)

// Clock reports the current instant.
type Clock func() time.Time

// Report is the shopkeeper dashboard payload for one shop.
type Report struct {
	Date            catalog.Date `json:"date"`
	WeeklySales     []LabelTotal `json:"weekly_sales"`
	PopularServices []LabelCount `json:"popular_services"`
	Today           TodayMetrics `json:"today"`
	ActiveStaff     int          `json:"active_staff"`
}

// Service builds dashboard reports.
type Service interface {
	// Report aggregates the sales of shop as seen today.
	Report(ctx context.Context, shop catalog.Shop) *Report
	// Today returns the date used for today's metrics.
	Today() catalog.Date
}

// Options configures the date source and label formatting. Zero values fall
// back to the local wall clock and DefaultWeekdayFormatter.
type Options struct {
	Clock      Clock
	FixedToday *catalog.Date
	Formatter  WeekdayFormatter
}

type service struct {
	clock     Clock
	fixed     *catalog.Date
	formatter WeekdayFormatter
}

// NewService builds a report service.
func NewService(opts Options) Service {
	s := &service{
		clock:     opts.Clock,
		formatter: opts.Formatter,
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.formatter == nil {
		s.formatter = DefaultWeekdayFormatter
	}
	if opts.FixedToday != nil && !opts.FixedToday.IsZero() {
		fixed := *opts.FixedToday
		s.fixed = &fixed
	}
	return s
}

func (s *service) Today() catalog.Date {
	if s.fixed != nil {
		return *s.fixed
	}
	return catalog.DateOf(s.clock())
}

func (s *service) Report(ctx context.Context, shop catalog.Shop) *Report {
	today := s.Today()
	return &Report{
		Date:            today,
		WeeklySales:     RevenueByWeekday(shop.Sales, s.formatter),
		PopularServices: TransactionsByService(shop.Sales, shop.Services),
		Today:           Today(shop.Sales, today),
		ActiveStaff:     len(shop.Staff),
	}
}
