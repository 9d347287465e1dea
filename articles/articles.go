package articles

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"encore/db"
	"encore/models"
	"encore/mq"
	"encore/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultAuthor = "Music Insider"

type BandSummary struct {
	Name        string `json:"name"`
	LogoURL     string `json:"logoUrl,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Description string `json:"description,omitempty"`
}

// ArticleView is an article with its band display fields joined in.
type ArticleView struct {
	models.Article
	Band BandSummary `json:"band"`
}

type Pagination struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalArticles int64 `json:"totalArticles"`
	HasNext       bool  `json:"hasNext"`
	HasPrev       bool  `json:"hasPrev"`
}

func buildPagination(total int64, page, limit int) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalArticles: total,
		HasNext:       page < totalPages,
		HasPrev:       page > 1,
	}
}

func attachBands(ctx context.Context, articles []models.Article, full bool) ([]ArticleView, error) {
	ids := []string{}
	seen := map[string]bool{}
	for _, a := range articles {
		if a.BandID != "" && !seen[a.BandID] {
			seen[a.BandID] = true
			ids = append(ids, a.BandID)
		}
	}

	bandsByID := map[string]models.Band{}
	if len(ids) > 0 {
		cursor, err := db.BandsCollection.Find(ctx, bson.M{"bandid": bson.M{"$in": ids}})
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

	views := make([]ArticleView, 0, len(articles))
	for _, a := range articles {
		view := ArticleView{Article: a}
		if band, ok := bandsByID[a.BandID]; ok {
			view.Band = BandSummary{Name: band.Name, LogoURL: band.LogoURL}
			if full {
				view.Band.Genre = band.Genre
				view.Band.Description = band.Description
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func findArticles(ctx context.Context, filter bson.M, page, limit int) ([]models.Article, error) {
	opts := options.Find().
		SetSort(bson.M{"publishdate": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := db.ArticlesCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var articles []models.Article
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []models.Article{}
	}
	return articles, nil
}

func respondPaginated(w http.ResponseWriter, r *http.Request, filter bson.M) {
	ctx := r.Context()
	opts := utils.ParseQueryOptions(r)

	articles, err := findArticles(ctx, filter, opts.Page, opts.Limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching articles")
		return
	}

	total, err := db.ArticlesCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error counting articles")
		return
	}

	views, err := attachBands(ctx, articles, false)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching articles")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"articles":   views,
		"pagination": buildPagination(total, opts.Page, opts.Limit),
	})
}

func GetArticles(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	respondPaginated(w, r, bson.M{})
}

// SearchArticles filters by free text over title/content, tag, and author.
func SearchArticles(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := utils.ParseQueryOptions(r)

	filter := bson.M{}
	if opts.Search != "" {
		re := primitive.Regex{Pattern: opts.Search, Options: "i"}
		filter["$or"] = []bson.M{
			{"title": re},
			{"content": re},
		}
	}
	if opts.Tag != "" {
		filter["tags"] = bson.M{"$in": []string{opts.Tag}}
	}
	if opts.Author != "" {
		filter["author"] = primitive.Regex{Pattern: opts.Author, Options: "i"}
	}

	respondPaginated(w, r, filter)
}

// GetFeaturedArticles returns the five most recent articles.
func GetFeaturedArticles(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	articles, err := findArticles(ctx, bson.M{}, 1, 5)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching articles")
		return
	}

	views, err := attachBands(ctx, articles, false)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching articles")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, views)
}

func GetTags(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	raw, err := db.ArticlesCollection.Distinct(ctx, "tags", bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching tags")
		return
	}

	tags := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			tags = append(tags, s)
		}
	}
	sort.Strings(tags)

	utils.RespondWithJSON(w, http.StatusOK, tags)
}

func GetArticlesByBand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	bandID := ps.ByName("bandId")

	cursor, err := db.ArticlesCollection.Find(ctx, bson.M{"bandid": bandID},
		options.Find().SetSort(bson.M{"publishdate": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching articles")
		return
	}
	defer cursor.Close(ctx)

	var articles []models.Article
	if err := cursor.All(ctx, &articles); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding articles")
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}

	views, err := attachBands(ctx, articles, false)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching articles")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, views)
}

func GetArticleByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	articleID := ps.ByName("id")

	var article models.Article
	if err := db.ArticlesCollection.FindOne(ctx, bson.M{"articleid": articleID}).Decode(&article); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Article not found")
		return
	}

	views, err := attachBands(ctx, []models.Article{article}, true)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching article")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, views[0])
}

func CreateArticle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var article models.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if article.Title == "" || article.Content == "" || article.BandID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title, content, and band are required")
		return
	}

	if err := db.BandsCollection.FindOne(ctx, bson.M{"bandid": article.BandID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Band not found")
		return
	}

	article.ArticleID = utils.NewID("a")
	if article.Author == "" {
		article.Author = defaultAuthor
	}
	if article.PublishDate.IsZero() {
		article.PublishDate = time.Now()
	}
	// Tags are lowercased and de-duplicated so the distinct tag list
	// stays clean.
	article.Tags = utils.SplitTags(strings.Join(article.Tags, ","))
	if article.ReadTime == 0 {
		article.ReadTime = 5
	}

	if _, err := db.ArticlesCollection.InsertOne(ctx, article); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create article")
		return
	}

	go mq.Emit(context.Background(), "article-created", models.Index{
		EntityType: "article", Method: "POST", EntityId: article.ArticleID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, article)
}

// JSON field names that differ from the stored bson keys.
var articleUpdateKeys = map[string]string{
	"bandId":      "bandid",
	"imageUrl":    "imageurl",
	"publishDate": "publishdate",
	"readTime":    "readtime",
}

// normalizeArticleUpdate strips managed fields and rewrites camelCase
// JSON keys to their bson names so a generic $set hits the stored
// document.
func normalizeArticleUpdate(update map[string]any) map[string]any {
	delete(update, "articleid")
	delete(update, "_id")
	for from, to := range articleUpdateKeys {
		if v, ok := update[from]; ok {
			delete(update, from)
			update[to] = v
		}
	}
	return update
}

func UpdateArticle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	articleID := ps.ByName("id")

	var update map[string]any
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	update = normalizeArticleUpdate(update)
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No valid fields to update")
		return
	}

	if bandID, ok := update["bandid"].(string); ok {
		if err := db.BandsCollection.FindOne(ctx, bson.M{"bandid": bandID}).Err(); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Band not found")
			return
		}
	}

	res, err := db.ArticlesCollection.UpdateOne(ctx, bson.M{"articleid": articleID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to update article")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Article not found")
		return
	}

	var article models.Article
	if err := db.ArticlesCollection.FindOne(ctx, bson.M{"articleid": articleID}).Decode(&article); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching article")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, article)
}

func DeleteArticle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	articleID := ps.ByName("id")

	res, err := db.ArticlesCollection.DeleteOne(ctx, bson.M{"articleid": articleID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete article")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Article not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Article deleted"})
}
