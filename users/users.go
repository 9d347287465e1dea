package users

import (
	"encoding/json"
	"net/http"

	"encore/auth"
	"encore/db"
	"encore/models"
	"encore/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

func GetAllUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	cursor, err := db.UserCollection.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"password": 0}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching users")
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding users")
		return
	}
	if len(users) == 0 {
		users = []models.User{}
	}

	utils.RespondWithJSON(w, http.StatusOK, users)
}

// UpdateUser applies a generic field update after stripping role, password,
// and identity fields from the payload.
func UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := ps.ByName("id")

	var update map[string]any
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	sanitized := SanitizeUpdate(update)
	if len(sanitized) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No valid fields to update")
		return
	}

	res, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": sanitized})
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to update user")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	var updated models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching user")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := ps.ByName("id")

	res, err := db.UserCollection.DeleteOne(ctx, bson.M{"userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "User deleted"})
}

// ValidateToken confirms the bearer token the gate already verified.
func ValidateToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"valid": true,
		"user": utils.M{
			"id":   utils.GetUserIDFromRequest(r),
			"role": utils.GetRoleFromRequest(r),
		},
	})
}

// UpdateUsername changes the caller's own username.
func UpdateUsername(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Username == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username is required")
		return
	}

	username, err := auth.ValidateUsername(input.Username)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var existing models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"username": username}).Decode(&existing); err == nil && existing.UserID != userID {
		utils.RespondWithError(w, http.StatusConflict, "Username already exists")
		return
	}

	res, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": bson.M{"username": username}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update username")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Username updated successfully"})
}

// UpdatePassword replaces the caller's password after checking the current
// one and re-validating strength.
func UpdatePassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.CurrentPassword == "" || input.NewPassword == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Current password and new password are required")
		return
	}

	if err := auth.ValidatePassword(input.NewPassword); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": bson.M{"password": string(hashed)}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Password updated successfully"})
}

// UpdateRole sets a user's role. Admin only; the role must be one of the
// fixed enum values.
func UpdateRole(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	userID := ps.ByName("userId")

	var input struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Role == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Role is required")
		return
	}

	switch input.Role {
	case models.RoleFan, models.RoleModerator, models.RoleAdmin:
	default:
		utils.RespondWithError(w, http.StatusBadRequest,
			`Invalid role. Must be either "fan", "moderator", or "admin"`)
		return
	}

	res, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": bson.M{"role": input.Role}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update role")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	var updated models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching user")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "User role updated to " + input.Role + " successfully",
		"user":    updated,
	})
}
