package contacts

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	contractx "github.com/tanpawarit/agentic-todos/agent/contract"
)

// Directory is a read-only contact list. Lookups are pure: no side
// effects, no mutation after construction.
type Directory struct {
	contacts []contractx.Contact
}

func NewDirectory(contacts []contractx.Contact) *Directory {
	return &Directory{
		contacts: append([]contractx.Contact(nil), contacts...),
	}
}

// Find returns the best match for query, or nil when no display name
// contains it. Matching is a case-insensitive substring test against the
// display name; ties break by ascending display name.
func (d *Directory) Find(query string) *contractx.Contact {
	q := strings.ToLower(query)

	var matches []contractx.Contact
	for _, c := range d.contacts {
		if strings.Contains(strings.ToLower(c.DisplayName()), q) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return nil
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].DisplayName() < matches[j].DisplayName()
	})

	best := matches[0]
	return &best
}

// SeedContacts returns the reference deployment's sample directory.
func SeedContacts() []contractx.Contact {
	return []contractx.Contact{
		{ID: uuid.NewString(), FirstName: "Peter", LastName: "Parker"},
		{ID: uuid.NewString(), FirstName: "Tony", LastName: "Stark"},
		{ID: uuid.NewString(), FirstName: "Bruce", LastName: "Banner"},
	}
}
