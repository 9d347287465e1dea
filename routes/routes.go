package routes

import (
	"net/http"

	"encore/analytics"
	"encore/articles"
	"encore/auth"
	"encore/bands"
	"encore/middleware"
	"encore/models"
	"encore/posters"
	"encore/ratelim"
	"encore/shows"
	"encore/users"
	"encore/venues"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/posterpic/*filepath", http.Dir("static/posterpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/users/register", rl.Limit(auth.Register))
	router.POST("/api/users/login", rl.Limit(auth.Login))
}

func AddUserRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/users", middleware.RequireRole(models.RoleAdmin, users.GetAllUsers))
	router.GET("/api/users/validate-token", middleware.Authenticate(users.ValidateToken))
	router.PUT("/api/users/update-username", rl.Limit(middleware.Authenticate(users.UpdateUsername)))
	router.PUT("/api/users/update-password", rl.Limit(middleware.Authenticate(users.UpdatePassword)))
	router.PUT("/api/users/update-role/:userId", middleware.RequireRole(models.RoleAdmin, users.UpdateRole))
	router.PUT("/api/users/user/:id", rl.Limit(middleware.RequireRole(models.RoleModerator, users.UpdateUser)))
	router.DELETE("/api/users/user/:id", middleware.RequireRole(models.RoleAdmin, users.DeleteUser))
}

func AddBandRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/bands", rl.Limit(bands.GetBands))
	router.GET("/api/bands/top", rl.Limit(bands.GetTopBands))
	router.GET("/api/bands/band/:id", bands.GetBandByID)
	router.POST("/api/bands", middleware.RequireRole(models.RoleAdmin, bands.CreateBand))
	router.PUT("/api/bands/band/:id", middleware.RequireRole(models.RoleModerator, bands.UpdateBand))
	router.DELETE("/api/bands/band/:id", middleware.RequireRole(models.RoleAdmin, bands.DeleteBand))

	router.GET("/api/bands/band/:id/albums", bands.GetAlbums)
	router.GET("/api/bands/band/:id/albums/:albumId", bands.GetAlbum)
	router.POST("/api/bands/band/:id/albums", middleware.RequireRole(models.RoleAdmin, bands.AddAlbum))
	router.PUT("/api/bands/band/:id/albums/:albumId", middleware.RequireRole(models.RoleAdmin, bands.EditAlbum))
}

func AddVenueRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/venues", rl.Limit(venues.GetVenues))
	router.GET("/api/venues/:id", venues.GetVenueByID)
	router.POST("/api/venues", middleware.RequireRole(models.RoleAdmin, venues.CreateVenue))
	router.PUT("/api/venues/:id", middleware.RequireRole(models.RoleAdmin, venues.UpdateVenue))
	router.DELETE("/api/venues/:id", middleware.RequireRole(models.RoleAdmin, venues.DeleteVenue))
}

func AddShowRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/shows", rl.Limit(shows.GetShows))
	router.GET("/api/shows/upcoming", rl.Limit(shows.GetUpcomingShows))
	router.GET("/api/shows/band/:bandId", shows.GetShowsByBand)
	router.GET("/api/shows/venue/:venueId", shows.GetShowsByVenue)
	router.GET("/api/shows/show/:id", shows.GetShowByID)
	router.POST("/api/shows", middleware.RequireRole(models.RoleAdmin, shows.CreateShow))
	router.PUT("/api/shows/show/:id", middleware.RequireRole(models.RoleAdmin, shows.UpdateShow))
	router.DELETE("/api/shows/show/:id", middleware.RequireRole(models.RoleAdmin, shows.DeleteShow))
}

func AddArticleRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/articles", rl.Limit(articles.GetArticles))
	router.GET("/api/articles/search", rl.Limit(articles.SearchArticles))
	router.GET("/api/articles/featured", articles.GetFeaturedArticles)
	router.GET("/api/articles/tags", articles.GetTags)
	router.GET("/api/articles/band/:bandId", articles.GetArticlesByBand)
	router.GET("/api/articles/article/:id", articles.GetArticleByID)
	router.POST("/api/articles", middleware.RequireRole(models.RoleModerator, articles.CreateArticle))
	router.PUT("/api/articles/article/:id", middleware.RequireRole(models.RoleModerator, articles.UpdateArticle))
	router.DELETE("/api/articles/article/:id", middleware.RequireRole(models.RoleModerator, articles.DeleteArticle))
}

func AddAnalyticsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/analytics", rl.Limit(middleware.RequireRole(models.RoleAdmin, analytics.GetAnalytics)))
}

func AddPosterRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/posters/generate", rl.Limit(middleware.RequireRole(models.RoleModerator, posters.GeneratePoster)))
	router.GET("/api/posters", middleware.RequireRole(models.RoleModerator, posters.GetUserPosters))
	router.GET("/api/posters/poster/:id", middleware.RequireRole(models.RoleModerator, posters.GetPosterByID))
	router.DELETE("/api/posters/poster/:id", middleware.RequireRole(models.RoleModerator, posters.DeletePoster))
}

// RoutesWrapper registers every route group. Login and register get the
// tighter auth limiter; everything else shares the general one.
func RoutesWrapper(router *httprouter.Router, rl *ratelim.RateLimiter, authRL *ratelim.RateLimiter) {
	AddAuthRoutes(router, authRL)
	AddUserRoutes(router, rl)
	AddBandRoutes(router, rl)
	AddVenueRoutes(router, rl)
	AddShowRoutes(router, rl)
	AddArticleRoutes(router, rl)
	AddAnalyticsRoutes(router, rl)
	AddPosterRoutes(router, rl)
	AddStaticRoutes(router)
}
