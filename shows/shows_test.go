package shows

import (
	"testing"
	"time"

	"encore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShowDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"rfc3339", "2026-09-15T20:00:00Z", time.Date(2026, 9, 15, 20, 0, 0, 0, time.UTC), false},
		{"no zone", "2026-09-15T20:00:00", time.Date(2026, 9, 15, 20, 0, 0, 0, time.UTC), false},
		{"date only", "2026-09-15", time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), false},
		{"garbage", "next friday", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseShowDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestValidateNewShow(t *testing.T) {
	valid := showInput{
		Band:         "b1",
		Venue:        "v1",
		Date:         "2026-09-15",
		Setlist:      []string{"Intro"},
		TicketsPrice: 40,
		TicketsSold:  12,
	}

	show, err := validateNewShow(valid)
	require.NoError(t, err)
	assert.Equal(t, "b1", show.BandID)
	assert.Equal(t, "v1", show.VenueID)
	assert.Equal(t, 40.0, show.TicketsPrice)
	assert.Equal(t, 12, show.TicketsSold)
	assert.Equal(t, []string{"Intro"}, show.Setlist)
}

func TestValidateNewShowErrors(t *testing.T) {
	base := showInput{Band: "b1", Venue: "v1", Date: "2026-09-15", TicketsPrice: 40}

	tests := []struct {
		name    string
		mutate  func(*showInput)
		wantMsg string
	}{
		{"missing band", func(s *showInput) { s.Band = "" }, "Band, venue, date, and ticket price are required"},
		{"missing venue", func(s *showInput) { s.Venue = "" }, "Band, venue, date, and ticket price are required"},
		{"missing date", func(s *showInput) { s.Date = "" }, "Band, venue, date, and ticket price are required"},
		{"zero price", func(s *showInput) { s.TicketsPrice = 0 }, "Band, venue, date, and ticket price are required"},
		{"negative price", func(s *showInput) { s.TicketsPrice = -5 }, "Ticket price must be greater than 0"},
		{"negative sold", func(s *showInput) { s.TicketsSold = -1 }, "Tickets sold cannot be negative"},
		{"bad date", func(s *showInput) { s.Date = "soon" }, "Invalid date format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := base
			tt.mutate(&input)
			_, err := validateNewShow(input)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidateNewShowDefaultsSetlist(t *testing.T) {
	show, err := validateNewShow(showInput{Band: "b1", Venue: "v1", Date: "2026-09-15", TicketsPrice: 10})
	require.NoError(t, err)
	assert.NotNil(t, show.Setlist)
	assert.Empty(t, show.Setlist)
}

func TestBuildShowViews(t *testing.T) {
	shows := []models.Show{
		{ShowID: "s1", BandID: "b1", VenueID: "v1"},
		{ShowID: "s2", BandID: "missing", VenueID: "v2"},
	}
	bands := map[string]models.Band{
		"b1": {BandID: "b1", Name: "Alpha", LogoURL: "alpha.png"},
	}
	venues := map[string]models.Venue{
		"v1": {VenueID: "v1", Name: "The Hall", Location: "Berlin"},
		"v2": {VenueID: "v2", Name: "No Address"},
	}

	views := BuildShowViews(shows, bands, venues)
	require.Len(t, views, 2)

	assert.Equal(t, "Alpha", views[0].Band.Name)
	assert.Equal(t, "alpha.png", views[0].Band.LogoURL)
	assert.Equal(t, "Berlin", views[0].Venue.Location)

	assert.Equal(t, UnknownBand, views[1].Band.Name)
	assert.Equal(t, "No Address", views[1].Venue.Name)
	assert.Equal(t, UnknownLocation, views[1].Venue.Location, "blank venue location gets the placeholder")
}

func TestBuildShowViewsEmpty(t *testing.T) {
	views := BuildShowViews(nil, nil, nil)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestReferencedIDs(t *testing.T) {
	shows := []models.Show{
		{ShowID: "s1", BandID: "b1", VenueID: "v1"},
		{ShowID: "s2", BandID: "b1", VenueID: "v2"},
		{ShowID: "s3", BandID: "b2"},
	}

	bandIDs, venueIDs := referencedIDs(shows)
	assert.ElementsMatch(t, []string{"b1", "b2"}, bandIDs)
	assert.ElementsMatch(t, []string{"v1", "v2"}, venueIDs)
}
