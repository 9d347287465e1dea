package posters

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"encore/db"
	"encore/models"
	"encore/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client is swapped out in tests.
var Client = NewImageClient()

// GeneratePoster builds a prompt from the submitted show details, calls
// the image API, persists the poster under the caller's id, and streams
// the raw PNG back with the record id in a header.
func GeneratePoster(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var details ShowDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if details.BandName == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Band name is required")
		return
	}

	prompt := BuildPrompt(details)

	image, err := Client.Generate(ctx, prompt)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	poster := models.Poster{
		PosterID:  utils.NewID("p"),
		UserID:    userID,
		BandName:  details.BandName,
		ShowTitle: details.ShowTitle,
		Venue:     details.Venue,
		Date:      details.Date,
		Style:     details.Style,
		ImageData: "data:image/png;base64," + base64.StdEncoding.EncodeToString(image),
		Prompt:    prompt,
		CreatedAt: time.Now(),
	}
	poster.ThumbURL = saveThumbnail(poster.PosterID, image)

	if _, err := db.PostersCollection.InsertOne(ctx, poster); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save poster")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `inline; filename="poster.png"`)
	w.Header().Set("X-Poster-ID", poster.PosterID)
	_, _ = w.Write(image)
}

// GetUserPosters lists the caller's posters newest first, excluding the
// heavy inline image payload.
func GetUserPosters(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	cursor, err := db.PostersCollection.Find(ctx,
		bson.M{"userid": userID},
		options.Find().
			SetSort(bson.M{"created_at": -1}).
			SetProjection(bson.M{"imagedata": 0}),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get posters")
		return
	}
	defer cursor.Close(ctx)

	var posters []models.Poster
	if err := cursor.All(ctx, &posters); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get posters")
		return
	}
	if posters == nil {
		posters = []models.Poster{}
	}

	utils.RespondWithJSON(w, http.StatusOK, posters)
}

// GetPosterByID returns a poster only when it belongs to the caller. The
// {id, owner} filter is the sole access control for poster data.
func GetPosterByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	posterID := ps.ByName("id")

	var poster models.Poster
	err := db.PostersCollection.FindOne(ctx, bson.M{"posterid": posterID, "userid": userID}).Decode(&poster)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Poster not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, poster)
}

func DeletePoster(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)
	posterID := ps.ByName("id")

	res, err := db.PostersCollection.DeleteOne(ctx, bson.M{"posterid": posterID, "userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete poster")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Poster not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Poster deleted successfully"})
}
