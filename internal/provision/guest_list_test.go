package provision

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsvp/internal/model"
)

func TestParseGuestList(t *testing.T) {
	input := strings.Join([]string{
		"group;last_name;first_name;roles",
		"0;Muster;Anna;Admin",
		"1;Keller;Beat;witness, guest",
		"0;Muster;Carl;guest",
		"2;Frei;Dora;GUEST",
	}, "\n")

	households, err := ParseGuestList(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, households, 3)

	assert.Equal(t, "0", households[0].Group)
	assert.Equal(t, []string{"Muster_Anna", "Muster_Carl"}, households[0].Names())
	assert.Equal(t, []model.RoleName{model.RoleAdmin}, households[0].Guests[0].Roles)

	assert.Equal(t, "1", households[1].Group)
	assert.Equal(t, []model.RoleName{model.RoleWitness, model.RoleGuest}, households[1].Guests[0].Roles)

	assert.Equal(t, "2", households[2].Group)
	assert.Equal(t, []model.RoleName{model.RoleGuest}, households[2].Guests[0].Roles)
}

func TestParseGuestList_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "empty"},
		{"wrong header", "group,last_name,first_name,roles\n", "unexpected header"},
		{"unknown role", "group;last_name;first_name;roles\n0;Muster;Anna;bride\n", "unknown role"},
		{"missing role", "group;last_name;first_name;roles\n0;Muster;Anna;\n", "at least one role"},
		{"missing name", "group;last_name;first_name;roles\n0;;Anna;guest\n", "names are required"},
		{"short row", "group;last_name;first_name;roles\n0;Muster;Anna\n", "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGuestList(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestQRFileName(t *testing.T) {
	h := Household{Guests: []GuestRow{
		{LastName: "Muster", FirstName: "Anna"},
		{LastName: "von Arx", FirstName: "Carl/Peter"},
	}}
	assert.Equal(t, "Muster_Anna_von-Arx_Carl-Peter.png", QRFileName(h))
}
