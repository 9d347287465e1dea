package models

import "time"

// Roles, lowest privilege first.
const (
	RoleFan       = "fan"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User struct for MongoDB documents. Password is the bcrypt hash and is
// never serialized into responses.
type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Password      string    `json:"-" bson:"password"`
	Role          string    `json:"role" bson:"role"`
	Subscriptions []string  `json:"subscriptions,omitempty" bson:"subscriptions,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	LastLogin     time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
}

type BandMember struct {
	Name       string `json:"name" bson:"name"`
	Instrument string `json:"instrument,omitempty" bson:"instrument,omitempty"`
}

type Song struct {
	SongID   string `json:"songid" bson:"songid"`
	Title    string `json:"title" bson:"title"`
	Duration int    `json:"duration,omitempty" bson:"duration,omitempty"` // seconds
	Listens  int    `json:"listens" bson:"listens"`
}

// Album has no identity outside its owning Band document.
type Album struct {
	AlbumID     string    `json:"albumid" bson:"albumid"`
	Title       string    `json:"title" bson:"title"`
	ReleaseDate time.Time `json:"releaseDate,omitempty" bson:"releasedate,omitempty"`
	CoverURL    string    `json:"coverUrl,omitempty" bson:"coverurl,omitempty"`
	Songs       []Song    `json:"songs" bson:"songs"`
}

type Band struct {
	BandID       string       `json:"bandid" bson:"bandid"`
	Name         string       `json:"name" bson:"name"`
	Genre        string       `json:"genre" bson:"genre"`
	Description  string       `json:"description,omitempty" bson:"description,omitempty"`
	LogoURL      string       `json:"logoUrl" bson:"logourl"`
	BandPhotoURL string       `json:"bandPhotoUrl,omitempty" bson:"bandphotourl,omitempty"`
	Members      []BandMember `json:"members" bson:"members"`
	Albums       []Album      `json:"albums" bson:"albums"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
}

type Venue struct {
	VenueID  string `json:"venueid" bson:"venueid"`
	Name     string `json:"name" bson:"name"`
	Location string `json:"location,omitempty" bson:"location,omitempty"`
	Capacity int    `json:"capacity,omitempty" bson:"capacity,omitempty"`
}

type Show struct {
	ShowID       string    `json:"showid" bson:"showid"`
	BandID       string    `json:"bandId" bson:"bandid"`
	VenueID      string    `json:"venueId" bson:"venueid"`
	Date         time.Time `json:"date" bson:"date"`
	Setlist      []string  `json:"setlist" bson:"setlist"`
	TicketsPrice float64   `json:"ticketsPrice" bson:"ticketsprice"`
	TicketsSold  int       `json:"ticketsSold" bson:"ticketssold"`
}

type Article struct {
	ArticleID   string    `json:"articleid" bson:"articleid"`
	Title       string    `json:"title" bson:"title"`
	BandID      string    `json:"bandId" bson:"bandid"`
	Content     string    `json:"content" bson:"content"`
	ImageURL    string    `json:"imageUrl,omitempty" bson:"imageurl,omitempty"`
	Author      string    `json:"author" bson:"author"`
	PublishDate time.Time `json:"publishDate" bson:"publishdate"`
	Tags        []string  `json:"tags" bson:"tags"`
	ReadTime    int       `json:"readTime" bson:"readtime"` // minutes
}

// Poster stores the generated artwork inline as a base64 data URI.
type Poster struct {
	PosterID  string    `json:"posterid" bson:"posterid"`
	UserID    string    `json:"userid" bson:"userid"`
	BandName  string    `json:"bandName" bson:"bandname"`
	ShowTitle string    `json:"showTitle,omitempty" bson:"showtitle,omitempty"`
	Venue     string    `json:"venue,omitempty" bson:"venue,omitempty"`
	Date      string    `json:"date,omitempty" bson:"date,omitempty"`
	Style     string    `json:"style,omitempty" bson:"style,omitempty"`
	ImageData string    `json:"imageData,omitempty" bson:"imagedata,omitempty"`
	ThumbURL  string    `json:"thumbUrl,omitempty" bson:"thumburl,omitempty"`
	Prompt    string    `json:"prompt,omitempty" bson:"prompt,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Index represents an entity-change message published to Redis.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id,omitempty"`
	ItemType   string `json:"item_type,omitempty"`
}
