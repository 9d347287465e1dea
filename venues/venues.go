package venues

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
	"go.mongodb.org/mongo-driver/mongo"
)

func GetVenues(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	cursor, err := db.VenuesCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching venues")
		return
	}
	defer cursor.Close(ctx)

	var venues []models.Venue
	if err := cursor.All(ctx, &venues); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding venues")
		return
	}
	if len(venues) == 0 {
		venues = []models.Venue{}
	}

	utils.RespondWithJSON(w, http.StatusOK, venues)
}

func GetVenueByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	venueID := ps.ByName("id")

	var venue models.Venue
	if err := db.VenuesCollection.FindOne(ctx, bson.M{"venueid": venueID}).Decode(&venue); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Venue not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, venue)
}

func CreateVenue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var venue models.Venue
	if err := json.NewDecoder(r.Body).Decode(&venue); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if venue.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}

	err := db.VenuesCollection.FindOne(ctx, bson.M{"name": venue.Name}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Venue already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	venue.VenueID = utils.NewID("v")

	if _, err := db.VenuesCollection.InsertOne(ctx, venue); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create venue")
		return
	}

	go mq.Emit(context.Background(), "venue-created", models.Index{
		EntityType: "venue", Method: "POST", EntityId: venue.VenueID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, venue)
}

func UpdateVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	venueID := ps.ByName("id")

	var update map[string]any
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	delete(update, "venueid")
	delete(update, "_id")
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No valid fields to update")
		return
	}

	res, err := db.VenuesCollection.UpdateOne(ctx, bson.M{"venueid": venueID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to update venue")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Venue not found")
		return
	}

	var venue models.Venue
	if err := db.VenuesCollection.FindOne(ctx, bson.M{"venueid": venueID}).Decode(&venue); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching venue")
		return
	}

	go mq.Emit(context.Background(), "venue-edited", models.Index{
		EntityType: "venue", Method: "PUT", EntityId: venueID,
	})

	utils.RespondWithJSON(w, http.StatusOK, venue)
}

func DeleteVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	venueID := ps.ByName("id")

	res, err := db.VenuesCollection.DeleteOne(ctx, bson.M{"venueid": venueID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete venue")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Venue not found")
		return
	}

	go mq.Emit(context.Background(), "venue-deleted", models.Index{
		EntityType: "venue", Method: "DELETE", EntityId: venueID,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Venue deleted"})
}
