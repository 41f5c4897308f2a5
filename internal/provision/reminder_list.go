package provision

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

var reminderListColumns = []string{"gender", "firstname", "lastname", "email"}

// ReminderGuest is one line of the reminder list.
type ReminderGuest struct {
	Gender    string
	FirstName string
	LastName  string
}

// ReminderGroup collects the guests reached through one address.
type ReminderGroup struct {
	Email  string
	Guests []ReminderGuest
}

// FirstNames returns the first names in greeting order.
func (g ReminderGroup) FirstNames() []string {
	names := make([]string, 0, len(g.Guests))
	for _, guest := range g.Guests {
		names = append(names, guest.FirstName)
	}
	return names
}

// ParseReminderList reads a comma-separated list with columns gender, firstname, lastname and email
// in any order. Guests are grouped by address in order of first appearance and sorted by gender
// within a group, so "female" precedes "male".
func ParseReminderList(r io.Reader) ([]ReminderGroup, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("reminder list is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := columnIndex(header, reminderListColumns)
	if err != nil {
		return nil, err
	}

	var groups []ReminderGroup
	index := make(map[string]int)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		email := strings.ToLower(strings.TrimSpace(record[cols["email"]]))
		guest := ReminderGuest{
			Gender:    strings.ToLower(strings.TrimSpace(record[cols["gender"]])),
			FirstName: strings.TrimSpace(record[cols["firstname"]]),
			LastName:  strings.TrimSpace(record[cols["lastname"]]),
		}
		if email == "" || guest.FirstName == "" {
			return nil, fmt.Errorf("line %d: email and firstname are required", line)
		}

		i, ok := index[email]
		if !ok {
			i = len(groups)
			index[email] = i
			groups = append(groups, ReminderGroup{Email: email})
		}
		groups[i].Guests = append(groups[i].Guests, guest)
	}

	for i := range groups {
		slices.SortStableFunc(groups[i].Guests, func(a, b ReminderGuest) int {
			return strings.Compare(a.Gender, b.Gender)
		})
	}
	return groups, nil
}

func columnIndex(header, required []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "\ufeff"))
		cols[name] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return cols, nil
}

// Reminder sends one reminder to an address.
type Reminder interface {
	NotifyReminder(ctx context.Context, to string, firstNames []string) bool
}

// SendReminders hands one reminder per group to r and reports how many were accepted.
func SendReminders(ctx context.Context, r Reminder, groups []ReminderGroup) int {
	sent := 0
	for _, g := range groups {
		if r.NotifyReminder(ctx, g.Email, g.FirstNames()) {
			sent++
		}
	}
	return sent
}
