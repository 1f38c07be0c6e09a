package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrack_Validate(t *testing.T) {
	tests := []struct {
		name    string
		track   Track
		wantErr bool
	}{
		{"title only", Track{Title: "Xtal"}, false},
		{"title and artist", Track{Title: "Xtal", Artist: "Aphex Twin"}, false},
		{"empty title", Track{Artist: "Aphex Twin"}, true},
		{"blank title", Track{Title: "   ", Artist: "Aphex Twin"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.track.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyTitle)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTrack_Query(t *testing.T) {
	tests := []struct {
		track    Track
		expected string
	}{
		{Track{Title: "Xtal"}, "Xtal"},
		{Track{Title: " Xtal ", Artist: " Aphex Twin "}, "Aphex Twin Xtal"},
		{Track{Title: "Xtal", Artist: "Aphex Twin", Search: "aphex twin xtal live"}, "aphex twin xtal live"},
		{Track{Title: "Xtal", Artist: "Aphex Twin", Search: "  "}, "Aphex Twin Xtal"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.track.Query())
	}
}

func TestTrack_DisplayName(t *testing.T) {
	assert.Equal(t, "Aphex Twin - Xtal", Track{Title: "Xtal", Artist: "Aphex Twin"}.DisplayName())
	assert.Equal(t, "Xtal", Track{Title: "Xtal"}.DisplayName())
}

func TestTrack_Key(t *testing.T) {
	a := Track{Title: "Xtal", Artist: "Aphex Twin"}
	b := Track{Title: "xtal", Artist: "aphex twin"}
	c := Track{Title: "Xtal", Artist: "Aphex Twin", Album: "Selected Ambient Works 85-92"}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}
