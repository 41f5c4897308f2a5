package provision

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"rsvp/internal/model"
)

var guestListHeader = []string{"group", "last_name", "first_name", "roles"}

// GuestRow is one line of the guest list.
type GuestRow struct {
	LastName  string
	FirstName string
	Roles     []model.RoleName
}

// Household is a group of guests sharing one invitation.
type Household struct {
	Group  string
	Guests []GuestRow
}

// Names returns "Last_First" for each guest, in list order.
func (h Household) Names() []string {
	names := make([]string, 0, len(h.Guests))
	for _, g := range h.Guests {
		names = append(names, g.LastName+"_"+g.FirstName)
	}
	return names
}

// ParseGuestList reads a ';'-separated guest list with header group;last_name;first_name;roles.
// Households are returned in order of first appearance.
func ParseGuestList(r io.Reader) ([]Household, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("guest list is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var households []Household
	index := make(map[string]int)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		group := strings.TrimSpace(record[0])
		row := GuestRow{
			LastName:  strings.TrimSpace(record[1]),
			FirstName: strings.TrimSpace(record[2]),
		}
		if group == "" || row.LastName == "" || row.FirstName == "" {
			return nil, fmt.Errorf("line %d: group and names are required", line)
		}
		row.Roles, err = parseRoles(record[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		i, ok := index[group]
		if !ok {
			i = len(households)
			index[group] = i
			households = append(households, Household{Group: group})
		}
		households[i].Guests = append(households[i].Guests, row)
	}
	return households, nil
}

func checkHeader(header []string) error {
	if len(header) != len(guestListHeader) {
		return fmt.Errorf("unexpected header %q", strings.Join(header, ";"))
	}
	for i, col := range guestListHeader {
		// tolerate a UTF-8 BOM written by spreadsheet exports
		if strings.TrimPrefix(strings.TrimSpace(header[i]), "\ufeff") != col {
			return fmt.Errorf("unexpected header %q", strings.Join(header, ";"))
		}
	}
	return nil
}

func parseRoles(raw string) ([]model.RoleName, error) {
	var roles []model.RoleName
	seen := make(map[model.RoleName]bool)
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		role, err := model.ParseRoleName(part)
		if err != nil {
			return nil, err
		}
		if !seen[role] {
			seen[role] = true
			roles = append(roles, role)
		}
	}
	if len(roles) == 0 {
		return nil, errors.New("at least one role is required")
	}
	return roles, nil
}
