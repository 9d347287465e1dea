package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"encore/db"
	"encore/models"
	"encore/mq"
	"encore/rdx"
	"encore/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cacheTTL = time.Minute

// Overview is the full analytics payload.
type Overview struct {
	TotalBands       int64        `json:"totalBands"`
	TotalAlbums      int          `json:"totalAlbums"`
	TotalShows       int64        `json:"totalShows"`
	TotalVenues      int64        `json:"totalVenues"`
	TotalRevenue     float64      `json:"totalRevenue"`
	TotalTicketsSold int          `json:"totalTicketsSold"`
	TopBands         []TopBand    `json:"topBands"`
	TopVenues        []TopVenue   `json:"topVenues"`
	RecentShows      []RecentShow `json:"recentShows"`
	GenreBreakdown   []GenreCount `json:"genreBreakdown"`
}

func fetchAllBands(ctx context.Context) ([]models.Band, error) {
	cursor, err := db.BandsCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bands []models.Band
	if err := cursor.All(ctx, &bands); err != nil {
		return nil, err
	}
	return bands, nil
}

func groupShowsByBand(ctx context.Context) ([]BandStat, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":       "$bandid",
			"showCount": bson.M{"$sum": 1},
			"totalRevenue": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$ticketsprice", "$ticketssold"},
			}},
		}}},
	}

	cursor, err := db.ShowsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stats []BandStat
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func groupShowsByVenue(ctx context.Context) ([]VenueStat, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":       "$venueid",
			"showCount": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := db.ShowsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stats []VenueStat
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func groupBandsByGenre(ctx context.Context) ([]GenreStat, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$genre",
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := db.BandsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stats []GenreStat
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func bandsByID(bands []models.Band) map[string]models.Band {
	m := make(map[string]models.Band, len(bands))
	for _, band := range bands {
		m[band.BandID] = band
	}
	return m
}

func fetchVenuesByID(ctx context.Context, ids []string) (map[string]models.Venue, error) {
	m := map[string]models.Venue{}
	if len(ids) == 0 {
		return m, nil
	}

	cursor, err := db.VenuesCollection.Find(ctx, bson.M{"venueid": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var venues []models.Venue
	if err := cursor.All(ctx, &venues); err != nil {
		return nil, err
	}
	for _, venue := range venues {
		m[venue.VenueID] = venue
	}
	return m, nil
}

// buildOverview runs every aggregation step; any failure aborts the whole
// computation so a partial overview is never returned.
func buildOverview(ctx context.Context) (*Overview, error) {
	totalBands, err := db.BandsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("counting bands: %w", err)
	}
	totalShows, err := db.ShowsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("counting shows: %w", err)
	}
	totalVenues, err := db.VenuesCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("counting venues: %w", err)
	}

	bands, err := fetchAllBands(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching bands: %w", err)
	}
	shows, err := fetchShows(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching shows: %w", err)
	}

	bandMap := bandsByID(bands)

	bandStats, err := groupShowsByBand(ctx)
	if err != nil {
		return nil, fmt.Errorf("grouping shows by band: %w", err)
	}
	venueStats, err := groupShowsByVenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("grouping shows by venue: %w", err)
	}
	genreStats, err := groupBandsByGenre(ctx)
	if err != nil {
		return nil, fmt.Errorf("grouping bands by genre: %w", err)
	}

	topVenueStats := TopVenueStats(venueStats, 10)
	venueIDs := make([]string, 0, len(topVenueStats))
	for _, stat := range topVenueStats {
		venueIDs = append(venueIDs, stat.VenueID)
	}

	recent, err := fetchShows(ctx, options.Find().SetSort(bson.M{"date": -1}).SetLimit(10))
	if err != nil {
		return nil, fmt.Errorf("fetching recent shows: %w", err)
	}
	recentVenueIDs := make([]string, 0, len(recent))
	for _, show := range recent {
		recentVenueIDs = append(recentVenueIDs, show.VenueID)
	}

	venueMap, err := fetchVenuesByID(ctx, append(venueIDs, recentVenueIDs...))
	if err != nil {
		return nil, fmt.Errorf("fetching venues: %w", err)
	}

	return &Overview{
		TotalBands:       totalBands,
		TotalAlbums:      SumAlbums(bands),
		TotalShows:       totalShows,
		TotalVenues:      totalVenues,
		TotalRevenue:     SumRevenue(shows),
		TotalTicketsSold: SumTicketsSold(shows),
		TopBands:         JoinTopBands(TopBandStats(bandStats, 10), bandMap),
		TopVenues:        JoinTopVenues(topVenueStats, venueMap),
		RecentShows:      BuildRecentShows(recent, bandMap, venueMap),
		GenreBreakdown:   ShapeGenres(genreStats),
	}, nil
}

func fetchShows(ctx context.Context, opts *options.FindOptions) ([]models.Show, error) {
	cursor, err := db.ShowsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shows []models.Show
	if err := cursor.All(ctx, &shows); err != nil {
		return nil, err
	}
	return shows, nil
}

// GetAnalytics serves the cached overview when Redis has it, recomputing
// otherwise. The cache is dropped on band/venue/show mutations.
func GetAnalytics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	if cached, err := rdx.GetCache(mq.AnalyticsCacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(cached))
		return
	}

	overview, err := buildOverview(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError,
			fmt.Sprintf("Analytics service error: %v", err))
		return
	}

	if data, err := json.Marshal(overview); err == nil {
		_ = rdx.SetCache(mq.AnalyticsCacheKey, string(data), cacheTTL)
	}

	utils.RespondWithJSON(w, http.StatusOK, overview)
}
