package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/angelmondragon/yahipe-backend/internal/catalog"
	"github.com/shopspring/decimal"
)

const notEnoughData = "Not enough data"

type serviceTally struct {
	name  string
	count int
}

// rankServices counts sales per service id in first-seen order, then sorts by
// count descending keeping scan order for ties.
func rankServices(shop catalog.Shop) []serviceTally {
	var tallies []serviceTally
	index := map[string]int{}
	for _, sale := range shop.Sales {
		i, ok := index[sale.ServiceID]
		if !ok {
			name := "Unknown"
			if svc, found := shop.FindService(sale.ServiceID); found {
				name = svc.Name
			}
			i = len(tallies)
			index[sale.ServiceID] = i
			tallies = append(tallies, serviceTally{name: name})
		}
		tallies[i].count++
	}
	sort.SliceStable(tallies, func(a, b int) bool {
		return tallies[a].count > tallies[b].count
	})
	return tallies
}

func tallyNames(tallies []serviceTally) string {
	names := make([]string, 0, len(tallies))
	for _, t := range tallies {
		names = append(names, t.name)
	}
	return strings.Join(names, ", ")
}

func salesTrend(sales []catalog.Sale) string {
	var order []catalog.Date
	totals := map[catalog.Date]decimal.Decimal{}
	for _, sale := range sales {
		if _, ok := totals[sale.Date]; !ok {
			order = append(order, sale.Date)
			totals[sale.Date] = decimal.Zero
		}
		totals[sale.Date] = totals[sale.Date].Add(sale.Amount)
	}
	parts := make([]string, 0, len(order))
	for _, d := range order {
		parts = append(parts, fmt.Sprintf("%s: %s", d, totals[d].String()))
	}
	return strings.Join(parts, "; ")
}

func orNotEnough(value string) string {
	if value == "" {
		return notEnoughData
	}
	return value
}

// BuildPrompt renders the consultant prompt for a shop's offering and sales.
func BuildPrompt(shop catalog.Shop) string {
	offered := make([]string, 0, len(shop.Services))
	for _, svc := range shop.Services {
		offered = append(offered, fmt.Sprintf("%s (Rs. %s)", svc.Name, svc.Price.String()))
	}

	ranked := rankServices(shop)
	top := ranked
	if len(top) > 3 {
		top = top[:3]
	}
	bottom := ranked
	if len(bottom) > 2 {
		bottom = bottom[len(bottom)-2:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a business consultant for small, local shops in India. Based on the following data for a %s named %q, ", shop.Category, shop.Name)
	b.WriteString("provide 3-5 actionable, simple, and encouraging suggestions to improve sales and customer engagement. ")
	b.WriteString("The suggestions should be very easy to understand for someone who is not a business expert.\n\n")
	b.WriteString("Shop Data:\n")
	fmt.Fprintf(&b, "- Services Offered: %s\n", strings.Join(offered, ", "))
	fmt.Fprintf(&b, "- Most Popular Services: %s\n", orNotEnough(tallyNames(top)))
	fmt.Fprintf(&b, "- Least Popular Services: %s\n", orNotEnough(tallyNames(bottom)))
	fmt.Fprintf(&b, "- Recent Sales Trend: %s\n\n", orNotEnough(salesTrend(shop.Sales)))
	b.WriteString("Provide the output as a simple, unnumbered list. Each suggestion must start with a relevant emoji. Write in a friendly and supportive tone.")
	return b.String()
}
