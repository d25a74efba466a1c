package leads

import "strings"

// Lead is the set of contact and event fields collected from a prospective
// customer. It has no server-side session storage: the widget carries it
// forward on every chat call and the server merges newly extracted fields in
// before handing it back.
type Lead struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Date     string `json:"date,omitempty"`
	City     string `json:"city,omitempty"`
	Guests   string `json:"guests,omitempty"`
	Budget   string `json:"budget,omitempty"`
	Services string `json:"services,omitempty"`
}

// Field labels in the fixed order used for missing-field prompts.
const (
	FieldName     = "name"
	FieldContact  = "email or phone"
	FieldDate     = "event date"
	FieldCity     = "city/venue"
	FieldGuests   = "guest count"
	FieldBudget   = "budget"
	FieldServices = "services"
)

// HasContact reports whether the lead has usable contact information.
func (l Lead) HasContact() bool {
	return strings.TrimSpace(l.Email) != "" || strings.TrimSpace(l.Phone) != ""
}

// Merge folds this turn's extraction into the carried-forward lead and
// returns the result. Email and phone are last-seen-wins: a value found this
// turn overwrites the old one. Name only fills in when the lead has none, so
// a client-supplied name is never clobbered by a heuristic match. No field
// is ever cleared.
func (l Lead) Merge(ext Extraction) Lead {
	merged := l
	if ext.Email != "" {
		merged.Email = ext.Email
	}
	if ext.Phone != "" {
		merged.Phone = ext.Phone
	}
	if ext.Name != "" && strings.TrimSpace(merged.Name) == "" {
		merged.Name = ext.Name
	}
	return merged
}

// MissingFields returns the required fields still unknown, in the fixed
// order name, email-or-phone, date, city, guests, budget, services. The
// contact pair counts as present when either email or phone is set.
func (l Lead) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(l.Name) == "" {
		missing = append(missing, FieldName)
	}
	if !l.HasContact() {
		missing = append(missing, FieldContact)
	}
	if strings.TrimSpace(l.Date) == "" {
		missing = append(missing, FieldDate)
	}
	if strings.TrimSpace(l.City) == "" {
		missing = append(missing, FieldCity)
	}
	if strings.TrimSpace(l.Guests) == "" {
		missing = append(missing, FieldGuests)
	}
	if strings.TrimSpace(l.Budget) == "" {
		missing = append(missing, FieldBudget)
	}
	if strings.TrimSpace(l.Services) == "" {
		missing = append(missing, FieldServices)
	}
	return missing
}

// Complete reports whether every required field (with the email-or-phone
// rule) is known.
func (l Lead) Complete() bool {
	return len(l.MissingFields()) == 0
}
