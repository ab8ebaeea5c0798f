package catalog

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Validate checks identity and value constraints across the whole seed and
// reports every violation at once. Sales referencing unknown services are
// allowed; analytics buckets them as "Unknown".
func Validate(seed *Seed) error {
	if seed == nil {
		return fmt.Errorf("seed is nil")
	}

	var errs error
	userIDs := map[string]struct{}{}
	emails := map[string]struct{}{}
	for i, u := range seed.Users {
		if strings.TrimSpace(u.ID) == "" {
			errs = multierr.Append(errs, fmt.Errorf("users[%d]: id is required", i))
		} else if _, dup := userIDs[u.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("users[%d]: duplicate id %q", i, u.ID))
		}
		userIDs[u.ID] = struct{}{}

		email := normalizeEmail(u.Email)
		if email == "" {
			errs = multierr.Append(errs, fmt.Errorf("users[%d]: email is required", i))
		} else if _, dup := emails[email]; dup {
			errs = multierr.Append(errs, fmt.Errorf("users[%d]: duplicate email %q", i, u.Email))
		}
		emails[email] = struct{}{}

		if !u.Role.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("users[%d]: invalid user role %q", i, u.Role))
		}
	}

	shopIDs := map[string]struct{}{}
	for i, s := range seed.Shops {
		if strings.TrimSpace(s.ID) == "" {
			errs = multierr.Append(errs, fmt.Errorf("shops[%d]: id is required", i))
		} else if _, dup := shopIDs[s.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("shops[%d]: duplicate id %q", i, s.ID))
		}
		shopIDs[s.ID] = struct{}{}

		if err := s.Location.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("shops[%d]: %w", i, err))
		}
		errs = multierr.Append(errs, validateShopLists(i, s))
	}
	return errs
}

func validateShopLists(idx int, s Shop) error {
	var errs error
	serviceIDs := map[string]struct{}{}
	for j, svc := range s.Services {
		if _, dup := serviceIDs[svc.ID]; dup || svc.ID == "" {
			errs = multierr.Append(errs, fmt.Errorf("shops[%d].services[%d]: missing or duplicate id %q", idx, j, svc.ID))
		}
		serviceIDs[svc.ID] = struct{}{}
		if svc.Price.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("shops[%d].services[%d]: price must be non-negative", idx, j))
		}
	}
	staffIDs := map[string]struct{}{}
	for j, st := range s.Staff {
		if _, dup := staffIDs[st.ID]; dup || st.ID == "" {
			errs = multierr.Append(errs, fmt.Errorf("shops[%d].staff[%d]: missing or duplicate id %q", idx, j, st.ID))
		}
		staffIDs[st.ID] = struct{}{}
	}
	for j, sale := range s.Sales {
		if sale.Date.IsZero() {
			errs = multierr.Append(errs, fmt.Errorf("shops[%d].sales[%d]: date is required", idx, j))
		}
		if sale.Amount.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("shops[%d].sales[%d]: amount must be non-negative", idx, j))
		}
	}
	return errs
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
