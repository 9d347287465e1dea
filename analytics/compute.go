package analytics

import (
	"sort"
	"time"

	"encore/models"
)

type BandStat struct {
	BandID       string  `bson:"_id" json:"bandid"`
	ShowCount    int     `bson:"showCount" json:"showCount"`
	TotalRevenue float64 `bson:"totalRevenue" json:"totalRevenue"`
}

type VenueStat struct {
	VenueID   string `bson:"_id" json:"venueid"`
	ShowCount int    `bson:"showCount" json:"showCount"`
}

type GenreStat struct {
	Genre string `bson:"_id"`
	Count int    `bson:"count"`
}

type TopBand struct {
	BandID       string  `json:"bandid"`
	Name         string  `json:"name"`
	LogoURL      string  `json:"logoUrl,omitempty"`
	ShowCount    int     `json:"showCount"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type TopVenue struct {
	VenueID   string `json:"venueid"`
	Name      string `json:"name"`
	Location  string `json:"location,omitempty"`
	ShowCount int    `json:"showCount"`
}

type ShowParty struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl,omitempty"`
}

type ShowPlace struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type RecentShow struct {
	ShowID      string    `json:"showid"`
	Band        ShowParty `json:"band"`
	Venue       ShowPlace `json:"venue"`
	Date        time.Time `json:"date"`
	TicketsSold int       `json:"ticketsSold"`
	Revenue     float64   `json:"revenue"`
}

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// SumAlbums counts embedded albums across all bands; there is no separate
// albums collection.
func SumAlbums(bands []models.Band) int {
	total := 0
	for _, band := range bands {
		total += len(band.Albums)
	}
	return total
}

// SumRevenue totals price × sold across shows. A show missing either value
// contributes zero.
func SumRevenue(shows []models.Show) float64 {
	total := 0.0
	for _, show := range shows {
		total += show.TicketsPrice * float64(show.TicketsSold)
	}
	return total
}

func SumTicketsSold(shows []models.Show) int {
	total := 0
	for _, show := range shows {
		total += show.TicketsSold
	}
	return total
}

// TopBandStats orders band stats by revenue descending, show count
// descending on ties, and keeps the first n.
func TopBandStats(stats []BandStat, n int) []BandStat {
	sorted := make([]BandStat, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalRevenue != sorted[j].TotalRevenue {
			return sorted[i].TotalRevenue > sorted[j].TotalRevenue
		}
		return sorted[i].ShowCount > sorted[j].ShowCount
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// TopVenueStats orders venue stats by show count descending and keeps the
// first n.
func TopVenueStats(stats []VenueStat, n int) []VenueStat {
	sorted := make([]VenueStat, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ShowCount > sorted[j].ShowCount
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// JoinTopBands attaches display fields to ranked stats. Stats whose band
// no longer exists are silently skipped.
func JoinTopBands(stats []BandStat, bandsByID map[string]models.Band) []TopBand {
	top := make([]TopBand, 0, len(stats))
	for _, stat := range stats {
		band, ok := bandsByID[stat.BandID]
		if !ok {
			continue
		}
		top = append(top, TopBand{
			BandID:       stat.BandID,
			Name:         band.Name,
			LogoURL:      band.LogoURL,
			ShowCount:    stat.ShowCount,
			TotalRevenue: stat.TotalRevenue,
		})
	}
	return top
}

// JoinTopVenues attaches display fields to ranked stats, skipping venues
// that no longer exist.
func JoinTopVenues(stats []VenueStat, venuesByID map[string]models.Venue) []TopVenue {
	top := make([]TopVenue, 0, len(stats))
	for _, stat := range stats {
		venue, ok := venuesByID[stat.VenueID]
		if !ok {
			continue
		}
		top = append(top, TopVenue{
			VenueID:   stat.VenueID,
			Name:      venue.Name,
			Location:  venue.Location,
			ShowCount: stat.ShowCount,
		})
	}
	return top
}

// BuildRecentShows shapes shows into summaries with placeholder display
// fields where a reference is missing.
func BuildRecentShows(shows []models.Show, bandsByID map[string]models.Band, venuesByID map[string]models.Venue) []RecentShow {
	recent := make([]RecentShow, 0, len(shows))
	for _, show := range shows {
		entry := RecentShow{
			ShowID:      show.ShowID,
			Band:        ShowParty{Name: "Unknown Band"},
			Venue:       ShowPlace{Name: "Unknown Venue", Location: "Unknown Location"},
			Date:        show.Date,
			TicketsSold: show.TicketsSold,
			Revenue:     show.TicketsPrice * float64(show.TicketsSold),
		}
		if band, ok := bandsByID[show.BandID]; ok {
			entry.Band = ShowParty{Name: band.Name, LogoURL: band.LogoURL}
		}
		if venue, ok := venuesByID[show.VenueID]; ok {
			entry.Venue = ShowPlace{Name: venue.Name, Location: venue.Location}
			if entry.Venue.Location == "" {
				entry.Venue.Location = "Unknown Location"
			}
		}
		recent = append(recent, entry)
	}
	return recent
}

// ShapeGenres converts genre stats to response rows, reporting a missing
// genre value as "Unknown". Input order (count descending) is preserved.
func ShapeGenres(stats []GenreStat) []GenreCount {
	out := make([]GenreCount, 0, len(stats))
	for _, stat := range stats {
		genre := stat.Genre
		if genre == "" {
			genre = "Unknown"
		}
		out = append(out, GenreCount{Genre: genre, Count: stat.Count})
	}
	return out
}
