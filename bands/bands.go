package bands

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"encore/db"
	"encore/models"
	"encore/mq"
	"encore/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func GetBands(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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
	if len(bands) == 0 {
		bands = []models.Band{}
	}

	utils.RespondWithJSON(w, http.StatusOK, bands)
}

func GetBandByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	bandID := ps.ByName("id")

	var band models.Band
	if err := db.BandsCollection.FindOne(ctx, bson.M{"bandid": bandID}).Decode(&band); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Band not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, band)
}

func CreateBand(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var band models.Band
	if err := json.NewDecoder(r.Body).Decode(&band); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if band.Name == "" || band.Genre == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and genre are required")
		return
	}

	// Band names are unique
	err := db.BandsCollection.FindOne(ctx, bson.M{"name": band.Name}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Band already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	band.BandID = utils.NewID("b")
	band.CreatedAt = time.Now()
	if band.Members == nil {
		band.Members = []models.BandMember{}
	}
	if band.Albums == nil {
		band.Albums = []models.Album{}
	}
	ensureAlbumIDs(band.Albums)

	if _, err := db.BandsCollection.InsertOne(ctx, band); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create band")
		return
	}

	go mq.Emit(context.Background(), "band-created", models.Index{
		EntityType: "band", Method: "POST", EntityId: band.BandID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, band)
}

// JSON field names that differ from the stored bson keys.
var bandUpdateKeys = map[string]string{
	"logoUrl":      "logourl",
	"bandPhotoUrl": "bandphotourl",
}

// normalizeBandUpdate strips managed fields and rewrites camelCase JSON
// keys to their bson names so a generic $set hits the stored document.
func normalizeBandUpdate(update map[string]any) map[string]any {
	// Ids and embedded albums are managed through their own endpoints.
	delete(update, "bandid")
	delete(update, "_id")
	delete(update, "albums")
	for from, to := range bandUpdateKeys {
		if v, ok := update[from]; ok {
			delete(update, from)
			update[to] = v
		}
	}
	return update
}

func UpdateBand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	bandID := ps.ByName("id")

	var update map[string]any
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	update = normalizeBandUpdate(update)
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No valid fields to update")
		return
	}

	res, err := db.BandsCollection.UpdateOne(ctx, bson.M{"bandid": bandID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to update band")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Band not found")
		return
	}

	var band models.Band
	if err := db.BandsCollection.FindOne(ctx, bson.M{"bandid": bandID}).Decode(&band); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching band")
		return
	}

	go mq.Emit(context.Background(), "band-edited", models.Index{
		EntityType: "band", Method: "PUT", EntityId: bandID,
	})

	utils.RespondWithJSON(w, http.StatusOK, band)
}

func DeleteBand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	bandID := ps.ByName("id")

	res, err := db.BandsCollection.DeleteOne(ctx, bson.M{"bandid": bandID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete band")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Band not found")
		return
	}

	go mq.Emit(context.Background(), "band-deleted", models.Index{
		EntityType: "band", Method: "DELETE", EntityId: bandID,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Band deleted"})
}
