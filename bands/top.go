package bands

import (
	"net/http"
	"sort"

	"encore/db"
	"encore/models"
	"encore/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// BandListens is a band plus its average song listens, used by the top
// bands endpoint.
type BandListens struct {
	models.Band
	AverageListeners float64 `json:"averageListeners"`
}

// AverageListens returns the mean listen count across every song embedded
// in the band's albums; zero when the band has no songs.
func AverageListens(band models.Band) float64 {
	totalListens := 0
	totalSongs := 0
	for _, album := range band.Albums {
		for _, song := range album.Songs {
			totalListens += song.Listens
			totalSongs++
		}
	}
	if totalSongs == 0 {
		return 0
	}
	return float64(totalListens) / float64(totalSongs)
}

// RankByAverageListens orders bands by average listens descending and
// keeps the first n.
func RankByAverageListens(bands []models.Band, n int) []BandListens {
	ranked := make([]BandListens, 0, len(bands))
	for _, band := range bands {
		ranked = append(ranked, BandListens{Band: band, AverageListeners: AverageListens(band)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AverageListeners > ranked[j].AverageListeners
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// GetTopBands returns the five bands with the highest average song listens.
func GetTopBands(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	cursor, err := db.BandsCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching bands")
		return
	}
	defer cursor.Close(ctx)

	var bands []models.Band
	if err := cursor.All(ctx, &bands); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding bands")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, RankByAverageListens(bands, 5))
}
