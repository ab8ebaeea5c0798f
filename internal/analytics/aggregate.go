package analytics

import (
	"github.com/angelmondragon/yahipe-backend/internal/catalog"
	"github.com/shopspring/decimal"
)

// UnknownService labels sales whose service id resolves to nothing in the shop.
const UnknownService = "Unknown"

// LabelTotal is one bar of the weekly revenue chart.
type LabelTotal struct {
	Label string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

// LabelCount is one slice of the popular services chart.
type LabelCount struct {
	Label string `json:"name"`
	Count int    `json:"value"`
}

// TodayMetrics summarizes the sales dated on a single day.
type TodayMetrics struct {
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"transactions"`
}

// WeekdayFormatter turns a sale date into its chart label.
type WeekdayFormatter func(catalog.Date) string

var shortWeekdays = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DefaultWeekdayFormatter renders English three-letter weekday names. It reads
// the civil date directly, so host timezone and locale do not shift the label.
func DefaultWeekdayFormatter(d catalog.Date) string {
	return shortWeekdays[d.Weekday()]
}

// RevenueByWeekday sums sale amounts per weekday label. Labels appear in the
// order they are first met in sales, not in calendar order.
func RevenueByWeekday(sales []catalog.Sale, format WeekdayFormatter) []LabelTotal {
	if format == nil {
		format = DefaultWeekdayFormatter
	}
	out := make([]LabelTotal, 0, 7)
	index := map[string]int{}
	for _, sale := range sales {
		label := format(sale.Date)
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, LabelTotal{Label: label, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(sale.Amount)
	}
	return out
}

// TransactionsByService counts sales per resolved service name in first-seen
// order. Unresolvable ids are grouped under UnknownService.
func TransactionsByService(sales []catalog.Sale, services []catalog.Service) []LabelCount {
	names := make(map[string]string, len(services))
	for _, svc := range services {
		if _, dup := names[svc.ID]; !dup {
			names[svc.ID] = svc.Name
		}
	}
	out := make([]LabelCount, 0, len(services))
	index := map[string]int{}
	for _, sale := range sales {
		label, ok := names[sale.ServiceID]
		if !ok {
			label = UnknownService
		}
		i, seen := index[label]
		if !seen {
			i = len(out)
			index[label] = i
			out = append(out, LabelCount{Label: label})
		}
		out[i].Count++
	}
	return out
}

// Today totals the sales dated exactly on day.
func Today(sales []catalog.Sale, day catalog.Date) TodayMetrics {
	metrics := TodayMetrics{Revenue: decimal.Zero}
	for _, sale := range sales {
		if sale.Date != day {
			continue
		}
		metrics.Revenue = metrics.Revenue.Add(sale.Amount)
		metrics.Count++
	}
	return metrics
}
