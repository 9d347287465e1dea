package shows

import (
	"context"

	"encore/db"
	"encore/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Display placeholders for broken references.
const (
	UnknownBand     = "Unknown Band"
	UnknownVenue    = "Unknown Venue"
	UnknownLocation = "Unknown Location"
)

type BandSummary struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl,omitempty"`
}

type VenueSummary struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// ShowView is a show with its band and venue display fields joined in.
type ShowView struct {
	models.Show
	Band  BandSummary  `json:"band"`
	Venue VenueSummary `json:"venue"`
}

// BuildShowViews joins display fields onto shows, substituting placeholder
// names where a referenced band or venue is missing.
func BuildShowViews(shows []models.Show, bandsByID map[string]models.Band, venuesByID map[string]models.Venue) []ShowView {
	views := make([]ShowView, 0, len(shows))
	for _, show := range shows {
		view := ShowView{
			Show:  show,
			Band:  BandSummary{Name: UnknownBand},
			Venue: VenueSummary{Name: UnknownVenue, Location: UnknownLocation},
		}
		if band, ok := bandsByID[show.BandID]; ok {
			view.Band = BandSummary{Name: band.Name, LogoURL: band.LogoURL}
		}
		if venue, ok := venuesByID[show.VenueID]; ok {
			view.Venue = VenueSummary{Name: venue.Name, Location: venue.Location}
			if view.Venue.Location == "" {
				view.Venue.Location = UnknownLocation
			}
		}
		views = append(views, view)
	}
	return views
}

func referencedIDs(shows []models.Show) (bandIDs, venueIDs []string) {
	seenBands := map[string]bool{}
	seenVenues := map[string]bool{}
	for _, show := range shows {
		if show.BandID != "" && !seenBands[show.BandID] {
			seenBands[show.BandID] = true
			bandIDs = append(bandIDs, show.BandID)
		}
		if show.VenueID != "" && !seenVenues[show.VenueID] {
			seenVenues[show.VenueID] = true
			venueIDs = append(venueIDs, show.VenueID)
		}
	}
	return bandIDs, venueIDs
}

// attachDisplay batch-fetches the referenced bands and venues and joins
// their display fields onto the shows.
func attachDisplay(ctx context.Context, shows []models.Show) ([]ShowView, error) {
	bandIDs, venueIDs := referencedIDs(shows)

	bandsByID := map[string]models.Band{}
	if len(bandIDs) > 0 {
		cursor, err := db.BandsCollection.Find(ctx, bson.M{"bandid": bson.M{"$in": bandIDs}})
		if err != nil {
			return nil, err
		}
		var bands []models.Band
		if err := cursor.All(ctx, &bands); err != nil {
			return nil, err
		}
		for _, band := range bands {
			bandsByID[band.BandID] = band
		}
	}

	venuesByID := map[string]models.Venue{}
	if len(venueIDs) > 0 {
		cursor, err := db.VenuesCollection.Find(ctx, bson.M{"venueid": bson.M{"$in": venueIDs}})
		if err != nil {
			return nil, err
		}
		var venues []models.Venue
		if err := cursor.All(ctx, &venues); err != nil {
			return nil, err
		}
		for _, venue := range venues {
			venuesByID[venue.VenueID] = venue
		}
	}

	return BuildShowViews(shows, bandsByID, venuesByID), nil
}
