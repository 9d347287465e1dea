package analytics

import (
	"testing"

	"encore/models"

	"github.com/stretchr/testify/assert"
)

func sampleShows() []models.Show {
	return []models.Show{
		{ShowID: "s1", BandID: "bA", VenueID: "v1", TicketsPrice: 100, TicketsSold: 50},
		{ShowID: "s2", BandID: "bA", VenueID: "v2", TicketsPrice: 200, TicketsSold: 10},
		{ShowID: "s3", BandID: "bB", VenueID: "v1", TicketsPrice: 50, TicketsSold: 100},
	}
}

func TestSumRevenue(t *testing.T) {
	// 100*50 + 200*10 + 50*100 = 12000
	assert.Equal(t, 12000.0, SumRevenue(sampleShows()))
	assert.Equal(t, 0.0, SumRevenue(nil))
}

func TestSumTicketsSold(t *testing.T) {
	assert.Equal(t, 160, SumTicketsSold(sampleShows()))
}

func TestSumAlbums(t *testing.T) {
	bands := []models.Band{
		{BandID: "bA", Albums: []models.Album{{AlbumID: "al1"}, {AlbumID: "al2"}}},
		{BandID: "bB"},
		{BandID: "bC", Albums: []models.Album{{AlbumID: "al3"}}},
	}
	assert.Equal(t, 3, SumAlbums(bands))
	assert.Equal(t, 0, SumAlbums(nil))
}

func TestTopBandStatsOrdering(t *testing.T) {
	stats := []BandStat{
		{BandID: "bB", ShowCount: 1, TotalRevenue: 5000},
		{BandID: "bA", ShowCount: 2, TotalRevenue: 7000},
		{BandID: "bC", ShowCount: 3, TotalRevenue: 1000},
	}

	top := TopBandStats(stats, 2)
	assert.Len(t, top, 2)
	assert.Equal(t, "bA", top[0].BandID)
	assert.Equal(t, "bB", top[1].BandID)
}

func TestTopBandStatsTieBreak(t *testing.T) {
	stats := []BandStat{
		{BandID: "bX", ShowCount: 1, TotalRevenue: 5000},
		{BandID: "bY", ShowCount: 4, TotalRevenue: 5000},
	}

	top := TopBandStats(stats, 5)
	assert.Equal(t, "bY", top[0].BandID, "equal revenue breaks on show count")
	assert.Equal(t, "bX", top[1].BandID)
}

func TestTopVenueStats(t *testing.T) {
	stats := []VenueStat{
		{VenueID: "v1", ShowCount: 2},
		{VenueID: "v2", ShowCount: 1},
		{VenueID: "v3", ShowCount: 5},
	}

	top := TopVenueStats(stats, 2)
	assert.Len(t, top, 2)
	assert.Equal(t, "v3", top[0].VenueID)
	assert.Equal(t, "v1", top[1].VenueID)
}

func TestJoinTopBands(t *testing.T) {
	stats := []BandStat{
		{BandID: "bA", ShowCount: 2, TotalRevenue: 7000},
		{BandID: "missing", ShowCount: 1, TotalRevenue: 100},
	}
	bands := map[string]models.Band{
		"bA": {BandID: "bA", Name: "Alpha", LogoURL: "alpha.png"},
	}

	joined := JoinTopBands(stats, bands)
	assert.Len(t, joined, 1, "stats without a matching band are dropped")
	assert.Equal(t, "Alpha", joined[0].Name)
	assert.Equal(t, "alpha.png", joined[0].LogoURL)
	assert.Equal(t, 7000.0, joined[0].TotalRevenue)
	assert.Equal(t, 2, joined[0].ShowCount)
}

func TestJoinTopVenues(t *testing.T) {
	stats := []VenueStat{
		{VenueID: "v1", ShowCount: 2},
		{VenueID: "gone", ShowCount: 1},
	}
	venues := map[string]models.Venue{
		"v1": {VenueID: "v1", Name: "The Hall", Location: "Berlin"},
	}

	joined := JoinTopVenues(stats, venues)
	assert.Len(t, joined, 1, "stats without a matching venue are dropped")
	assert.Equal(t, "The Hall", joined[0].Name)
	assert.Equal(t, "Berlin", joined[0].Location)
	assert.Equal(t, 2, joined[0].ShowCount)
}

func TestBuildRecentShowsPlaceholders(t *testing.T) {
	shows := []models.Show{
		{ShowID: "s1", BandID: "bA", VenueID: "v1", TicketsPrice: 20, TicketsSold: 3},
		{ShowID: "s2", BandID: "ghost", VenueID: "nowhere"},
	}
	bands := map[string]models.Band{"bA": {BandID: "bA", Name: "Alpha"}}
	venues := map[string]models.Venue{"v1": {VenueID: "v1", Name: "The Hall", Location: "Berlin"}}

	recent := BuildRecentShows(shows, bands, venues)
	assert.Len(t, recent, 2)
	assert.Equal(t, "Alpha", recent[0].Band.Name)
	assert.Equal(t, "The Hall", recent[0].Venue.Name)
	assert.Equal(t, 60.0, recent[0].Revenue)
	assert.Equal(t, "Unknown Band", recent[1].Band.Name)
	assert.Equal(t, "Unknown Venue", recent[1].Venue.Name)
	assert.Equal(t, "Unknown Location", recent[1].Venue.Location)
}

func TestShapeGenres(t *testing.T) {
	in := []GenreStat{
		{Genre: "rock", Count: 4},
		{Genre: "", Count: 2},
	}

	out := ShapeGenres(in)
	assert.Equal(t, "rock", out[0].Genre)
	assert.Equal(t, "Unknown", out[1].Genre)
	assert.Equal(t, 2, out[1].Count)
}
