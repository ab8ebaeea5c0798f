package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/yahipe-backend/internal/catalog"
	"github.com/shopspring/decimal"
)

func mustDate(t *testing.T, value string) catalog.Date {
	t.Helper()
	d, err := catalog.ParseDate(value)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return d
}

func sale(t *testing.T, date, serviceID string, amount int64) catalog.Sale {
	t.Helper()
	return catalog.Sale{Date: mustDate(t, date), ServiceID: serviceID, Amount: decimal.NewFromInt(amount)}
}

func sitaServices() []catalog.Service {
	return []catalog.Service{
		{ID: "s1-1", Name: "Haircut - Men", Price: decimal.NewFromInt(150)},
		{ID: "s1-2", Name: "Haircut - Women", Price: decimal.NewFromInt(300)},
		{ID: "s1-3", Name: "Shaving", Price: decimal.NewFromInt(80)},
		{ID: "s1-4", Name: "Facial", Price: decimal.NewFromInt(800)},
		{ID: "s1-5", Name: "Manicure", Price: decimal.NewFromInt(400)},
	}
}

func TestSitaSalonScenario(t *testing.T) {
	sales := []catalog.Sale{
		sale(t, "2023-10-01", "s1-1", 150),
		sale(t, "2023-10-01", "s1-2", 300),
		sale(t, "2023-10-02", "s1-4", 800),
	}

	weekly := RevenueByWeekday(sales, nil)
	if len(weekly) != 2 {
		t.Fatalf("expected 2 weekday buckets, got %d", len(weekly))
	}
	if weekly[0].Label != "Sun" || !weekly[0].Total.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("unexpected first bucket: %+v", weekly[0])
	}
	if weekly[1].Label != "Mon" || !weekly[1].Total.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("unexpected second bucket: %+v", weekly[1])
	}

	counts := TransactionsByService(sales, sitaServices())
	want := []LabelCount{
		{Label: "Haircut - Men", Count: 1},
		{Label: "Haircut - Women", Count: 1},
		{Label: "Facial", Count: 1},
	}
	if len(counts) != len(want) {
		t.Fatalf("expected %d service buckets, got %+v", len(want), counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("bucket %d: expected %+v, got %+v", i, want[i], counts[i])
		}
	}
}

func TestWeekdayOrderIsFirstSeen(t *testing.T) {
	sales := []catalog.Sale{
		sale(t, "2023-10-04", "a", 1), // Wed
		sale(t, "2023-10-02", "a", 2), // Mon
		sale(t, "2023-10-11", "a", 3), // Wed
	}
	weekly := RevenueByWeekday(sales, nil)
	if len(weekly) != 2 || weekly[0].Label != "Wed" || weekly[1].Label != "Mon" {
		t.Fatalf("unexpected order: %+v", weekly)
	}
	if !weekly[0].Total.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("expected Wed total 4, got %s", weekly[0].Total)
	}
}

func TestAggregatesPreserveTotals(t *testing.T) {
	store, err := catalog.Open("")
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	shop, _ := store.Shop("shop-1")

	sum := decimal.Zero
	for _, s := range shop.Sales {
		sum = sum.Add(s.Amount)
	}
	weeklySum := decimal.Zero
	for _, b := range RevenueByWeekday(shop.Sales, nil) {
		weeklySum = weeklySum.Add(b.Total)
	}
	if !weeklySum.Equal(sum) {
		t.Fatalf("weekday totals %s do not match grand total %s", weeklySum, sum)
	}

	count := 0
	for _, b := range TransactionsByService(shop.Sales, shop.Services) {
		count += b.Count
	}
	if count != len(shop.Sales) {
		t.Fatalf("service counts %d do not match sale count %d", count, len(shop.Sales))
	}
}

func TestUnknownServiceBucket(t *testing.T) {
	sales := []catalog.Sale{
		sale(t, "2023-10-01", "ghost", 10),
		sale(t, "2023-10-01", "s1-1", 150),
		sale(t, "2023-10-01", "other-ghost", 5),
	}
	counts := TransactionsByService(sales, sitaServices())
	if len(counts) != 2 {
		t.Fatalf("expected 2 buckets, got %+v", counts)
	}
	if counts[0].Label != UnknownService || counts[0].Count != 2 {
		t.Fatalf("expected Unknown bucket with 2, got %+v", counts[0])
	}
}

func TestEmptySalesProduceEmptySeries(t *testing.T) {
	if got := RevenueByWeekday(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty weekly series, got %+v", got)
	}
	if got := TransactionsByService(nil, sitaServices()); len(got) != 0 {
		t.Fatalf("expected empty service series, got %+v", got)
	}
}

func TestTodayMetrics(t *testing.T) {
	sales := []catalog.Sale{
		sale(t, "2023-10-05", "s1-2", 300),
		sale(t, "2023-10-05", "s1-1", 150),
		sale(t, "2023-10-06", "s1-4", 800),
	}

	got := Today(sales, mustDate(t, "2023-10-05"))
	if got.Count != 2 || !got.Revenue.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("unexpected today metrics: %+v", got)
	}

	none := Today(sales, mustDate(t, "2024-01-01"))
	if none.Count != 0 || !none.Revenue.IsZero() {
		t.Fatalf("expected zero metrics, got %+v", none)
	}
}

func TestCustomFormatter(t *testing.T) {
	sales := []catalog.Sale{sale(t, "2023-10-01", "a", 1)}
	weekly := RevenueByWeekday(sales, func(d catalog.Date) string { return d.Weekday().String() })
	if weekly[0].Label != "Sunday" {
		t.Fatalf("expected custom label, got %s", weekly[0].Label)
	}
}

func TestServiceReportUsesClock(t *testing.T) {
	clock := func() time.Time { return time.Date(2023, time.October, 5, 18, 30, 0, 0, time.UTC) }
	svc := NewService(Options{Clock: clock})

	store, err := catalog.Open("")
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	shop, _ := store.Shop("shop-1")

	report := svc.Report(context.Background(), shop)
	if report.Date.String() != "2023-10-05" {
		t.Fatalf("unexpected report date %s", report.Date)
	}
	if report.Today.Count != 2 || !report.Today.Revenue.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("unexpected today metrics: %+v", report.Today)
	}
	if report.ActiveStaff != 2 {
		t.Fatalf("expected 2 active staff, got %d", report.ActiveStaff)
	}
	if len(report.WeeklySales) != 7 {
		t.Fatalf("expected 7 weekday buckets, got %d", len(report.WeeklySales))
	}
	if report.PopularServices[0].Label != "Haircut - Men" || report.PopularServices[0].Count != 4 {
		t.Fatalf("unexpected first popular service: %+v", report.PopularServices[0])
	}
}

func TestServiceFixedTodayOverridesClock(t *testing.T) {
	fixed := mustDate(t, "2023-10-02")
	svc := NewService(Options{
		Clock:      func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) },
		FixedToday: &fixed,
	})
	if got := svc.Today(); got != fixed {
		t.Fatalf("expected fixed date %s, got %s", fixed, got)
	}
}
