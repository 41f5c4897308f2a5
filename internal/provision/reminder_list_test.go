package provision

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReminderList(t *testing.T) {
	input := strings.Join([]string{
		"gender,firstname,lastname,email",
		"male,Beat,Muster,muster@example.com",
		"female,Dora,Frei,dora@example.com",
		"female,Anna,Muster,Muster@Example.com",
	}, "\n")

	groups, err := ParseReminderList(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "muster@example.com", groups[0].Email)
	assert.Equal(t, []string{"Anna", "Beat"}, groups[0].FirstNames())
	assert.Equal(t, "dora@example.com", groups[1].Email)
	assert.Equal(t, []string{"Dora"}, groups[1].FirstNames())
}

func TestParseReminderList_ColumnOrder(t *testing.T) {
	input := "email,lastname,firstname,gender\nanna@example.com,Muster,Anna,female\n"

	groups, err := ParseReminderList(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, ReminderGuest{Gender: "female", FirstName: "Anna", LastName: "Muster"}, groups[0].Guests[0])
}

func TestParseReminderList_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "empty"},
		{"missing column", "gender,firstname,lastname\nmale,Beat,Muster\n", `missing column "email"`},
		{"missing email", "gender,firstname,lastname,email\nmale,Beat,Muster,\n", "line 2"},
		{"short row", "gender,firstname,lastname,email\nmale,Beat\n", "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReminderList(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

type recordingReminder struct {
	sent   map[string][]string
	refuse string
}

func (r *recordingReminder) NotifyReminder(_ context.Context, to string, firstNames []string) bool {
	if to == r.refuse {
		return false
	}
	if r.sent == nil {
		r.sent = make(map[string][]string)
	}
	r.sent[to] = firstNames
	return true
}

func TestSendReminders(t *testing.T) {
	groups := []ReminderGroup{
		{Email: "muster@example.com", Guests: []ReminderGuest{{FirstName: "Anna"}, {FirstName: "Beat"}}},
		{Email: "dora@example.com", Guests: []ReminderGuest{{FirstName: "Dora"}}},
	}
	r := &recordingReminder{refuse: "dora@example.com"}

	sent := SendReminders(context.Background(), r, groups)

	assert.Equal(t, 1, sent)
	assert.Equal(t, map[string][]string{"muster@example.com": {"Anna", "Beat"}}, r.sent)
}
