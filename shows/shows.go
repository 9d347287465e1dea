package shows

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

func fetchShows(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Show, error) {
	cursor, err := db.ShowsCollection.Find(ctx, filter, opts)
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

func respondWithViews(w http.ResponseWriter, r *http.Request, shows []models.Show) {
	views, err := attachDisplay(r.Context(), shows)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching shows")
		return
	}
	if views == nil {
		views = []ShowView{}
	}
	utils.RespondWithJSON(w, http.StatusOK, views)
}

func GetShows(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	shows, err := fetchShows(r.Context(), bson.M{}, options.Find().SetSort(bson.M{"date": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching shows")
		return
	}
	respondWithViews(w, r, shows)
}

func GetUpcomingShows(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{"date": bson.M{"$gte": time.Now()}}
	shows, err := fetchShows(r.Context(), filter, options.Find().SetSort(bson.M{"date": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching shows")
		return
	}
	respondWithViews(w, r, shows)
}

func GetShowByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	showID := ps.ByName("id")

	var show models.Show
	if err := db.ShowsCollection.FindOne(ctx, bson.M{"showid": showID}).Decode(&show); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Show not found")
		return
	}

	views, err := attachDisplay(ctx, []models.Show{show})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching show")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, views[0])
}

func GetShowsByBand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	bandID := ps.ByName("bandId")

	if err := db.BandsCollection.FindOne(ctx, bson.M{"bandid": bandID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Band not found")
		return
	}

	shows, err := fetchShows(ctx, bson.M{"bandid": bandID}, options.Find().SetSort(bson.M{"date": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching shows")
		return
	}
	respondWithViews(w, r, shows)
}

func GetShowsByVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	venueID := ps.ByName("venueId")

	if err := db.VenuesCollection.FindOne(ctx, bson.M{"venueid": venueID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Venue not found")
		return
	}

	shows, err := fetchShows(ctx, bson.M{"venueid": venueID}, options.Find().SetSort(bson.M{"date": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching shows")
		return
	}
	respondWithViews(w, r, shows)
}

// CreateShow inserts a show after verifying its band and venue exist.
// Nothing is written when either reference is missing.
func CreateShow(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var input showInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	show, err := validateNewShow(input)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := db.BandsCollection.FindOne(ctx, bson.M{"bandid": show.BandID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Band not found")
		return
	}
	if err := db.VenuesCollection.FindOne(ctx, bson.M{"venueid": show.VenueID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Venue not found")
		return
	}

	show.ShowID = utils.NewID("s")

	if _, err := db.ShowsCollection.InsertOne(ctx, show); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create show")
		return
	}

	go mq.Emit(context.Background(), "show-created", models.Index{
		EntityType: "show", Method: "POST", EntityId: show.ShowID,
	})

	views, err := attachDisplay(ctx, []models.Show{show})
	if err != nil {
		utils.RespondWithJSON(w, http.StatusCreated, show)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, views[0])
}

type showPatch struct {
	Band         *string   `json:"band"`
	Venue        *string   `json:"venue"`
	Date         *string   `json:"date"`
	Setlist      *[]string `json:"setlist"`
	TicketsPrice *float64  `json:"ticketsPrice"`
	TicketsSold  *int      `json:"ticketsSold"`
}

func UpdateShow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	showID := ps.ByName("id")

	var patch showPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := db.ShowsCollection.FindOne(ctx, bson.M{"showid": showID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Show not found")
		return
	}

	update := bson.M{}

	if patch.Band != nil {
		if err := db.BandsCollection.FindOne(ctx, bson.M{"bandid": *patch.Band}).Err(); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Band not found")
			return
		}
		update["bandid"] = *patch.Band
	}
	if patch.Venue != nil {
		if err := db.VenuesCollection.FindOne(ctx, bson.M{"venueid": *patch.Venue}).Err(); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Venue not found")
			return
		}
		update["venueid"] = *patch.Venue
	}
	if patch.Date != nil {
		date, err := parseShowDate(*patch.Date)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if !date.After(time.Now()) {
			utils.RespondWithError(w, http.StatusBadRequest, "Show date must be in the future")
			return
		}
		update["date"] = date
	}
	if patch.Setlist != nil {
		update["setlist"] = *patch.Setlist
	}
	if patch.TicketsPrice != nil {
		if *patch.TicketsPrice <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Ticket price must be greater than 0")
			return
		}
		update["ticketsprice"] = *patch.TicketsPrice
	}
	if patch.TicketsSold != nil {
		if *patch.TicketsSold < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Tickets sold cannot be negative")
			return
		}
		update["ticketssold"] = *patch.TicketsSold
	}

	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No valid fields to update")
		return
	}

	if _, err := db.ShowsCollection.UpdateOne(ctx, bson.M{"showid": showID}, bson.M{"$set": update}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update show")
		return
	}

	var show models.Show
	if err := db.ShowsCollection.FindOne(ctx, bson.M{"showid": showID}).Decode(&show); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching show")
		return
	}

	go mq.Emit(context.Background(), "show-edited", models.Index{
		EntityType: "show", Method: "PUT", EntityId: showID,
	})

	views, err := attachDisplay(ctx, []models.Show{show})
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, show)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, views[0])
}

func DeleteShow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	showID := ps.ByName("id")

	res, err := db.ShowsCollection.DeleteOne(ctx, bson.M{"showid": showID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete show")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Show not found")
		return
	}

	go mq.Emit(context.Background(), "show-deleted", models.Index{
		EntityType: "show", Method: "DELETE", EntityId: showID,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Show deleted successfully"})
}
