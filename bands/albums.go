package bands

import (
	"context"
	"encoding/json"
	"net/http"

	"encore/db"
	"encore/models"
	"encore/mq"
	"encore/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Albums and songs live inside the owning band document. Mutations fetch
// the band, modify the embedded array in memory, and write the whole array
// back, so a single document update carries the change.

func ensureAlbumIDs(albums []models.Album) {
	for i := range albums {
		if albums[i].AlbumID == "" {
			albums[i].AlbumID = utils.NewID("al")
		}
		if albums[i].Songs == nil {
			albums[i].Songs = []models.Song{}
		}
		for j := range albums[i].Songs {
			if albums[i].Songs[j].SongID == "" {
				albums[i].Songs[j].SongID = utils.NewID("sg")
			}
		}
	}
}

func findAlbum(band *models.Band, albumID string) *models.Album {
	for i := range band.Albums {
		if band.Albums[i].AlbumID == albumID {
			return &band.Albums[i]
		}
	}
	return nil
}

// mergeAlbum applies the non-zero fields of patch onto dst. Songs replace
// wholesale; partial song edits go through the album payload.
func mergeAlbum(dst *models.Album, patch models.Album) {
	if patch.Title != "" {
		dst.Title = patch.Title
	}
	if !patch.ReleaseDate.IsZero() {
		dst.ReleaseDate = patch.ReleaseDate
	}
	if patch.CoverURL != "" {
		dst.CoverURL = patch.CoverURL
	}
	if patch.Songs != nil {
		dst.Songs = patch.Songs
	}
}

func GetAlbums(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	bandID := ps.ByName("id")

	var band models.Band
	if err := db.BandsCollection.FindOne(ctx, bson.M{"bandid": bandID}).Decode(&band); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Band not found")
		return
	}
	if band.Albums == nil {
		band.Albums = []models.Album{}
	}

	utils.RespondWithJSON(w, http.StatusOK, band.Albums)
}

func GetAlbum(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	bandID := ps.ByName("id")
	albumID := ps.ByName("albumId")

	var band models.Band
	if err := db.BandsCollection.FindOne(ctx, bson.M{"bandid": bandID}).Decode(&band); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Band not found")
		return
	}

	album := findAlbum(&band, albumID)
	if album == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Album not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, album)
}

func AddAlbum(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	bandID := ps.ByName("id")

	var album models.Album
	if err := json.NewDecoder(r.Body).Decode(&album); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if album.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Album title is required")
		return
	}

	album.AlbumID = utils.NewID("al")
	if album.Songs == nil {
		album.Songs = []models.Song{}
	}
	for i := range album.Songs {
		if album.Songs[i].SongID == "" {
			album.Songs[i].SongID = utils.NewID("sg")
		}
	}

	res, err := db.BandsCollection.UpdateOne(ctx,
		bson.M{"bandid": bandID},
		bson.M{"$push": bson.M{"albums": album}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add album")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Band not found")
		return
	}

	go mq.Emit(context.Background(), "album-added", models.Index{
		EntityType: "band", Method: "PUT", EntityId: bandID, ItemId: album.AlbumID, ItemType: "album",
	})

	utils.RespondWithJSON(w, http.StatusCreated, album)
}

func EditAlbum(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	bandID := ps.ByName("id")
	albumID := ps.ByName("albumId")

	var patch models.Album
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var band models.Band
	if err := db.BandsCollection.FindOne(ctx, bson.M{"bandid": bandID}).Decode(&band); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Band not found")
		return
	}

	album := findAlbum(&band, albumID)
	if album == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Album not found")
		return
	}

	mergeAlbum(album, patch)
	album.AlbumID = albumID
	ensureAlbumIDs(band.Albums)

	if _, err := db.BandsCollection.UpdateOne(ctx,
		bson.M{"bandid": bandID},
		bson.M{"$set": bson.M{"albums": band.Albums}},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update album")
		return
	}

	go mq.Emit(context.Background(), "album-edited", models.Index{
		EntityType: "band", Method: "PUT", EntityId: bandID, ItemId: albumID, ItemType: "album",
	})

	utils.RespondWithJSON(w, http.StatusOK, album)
}
