package shows

import (
	"fmt"
	"time"

	"encore/models"
)

type showInput struct {
	Band         string   `json:"band"`
	Venue        string   `json:"venue"`
	Date         string   `json:"date"`
	Setlist      []string `json:"setlist"`
	TicketsPrice float64  `json:"ticketsPrice"`
	TicketsSold  int      `json:"ticketsSold"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseShowDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("Invalid date format")
}

// validateNewShow checks required fields and value rules, returning the
// show ready for insertion. Referential checks happen at the handler.
func validateNewShow(input showInput) (models.Show, error) {
	if input.Band == "" || input.Venue == "" || input.Date == "" || input.TicketsPrice == 0 {
		return models.Show{}, fmt.Errorf("Band, venue, date, and ticket price are required")
	}

	date, err := parseShowDate(input.Date)
	if err != nil {
		return models.Show{}, err
	}

	if input.TicketsPrice <= 0 {
		return models.Show{}, fmt.Errorf("Ticket price must be greater than 0")
	}
	if input.TicketsSold < 0 {
		return models.Show{}, fmt.Errorf("Tickets sold cannot be negative")
	}

	setlist := input.Setlist
	if setlist == nil {
		setlist = []string{}
	}

	return models.Show{
		BandID:       input.Band,
		VenueID:      input.Venue,
		Date:         date,
		Setlist:      setlist,
		TicketsPrice: input.TicketsPrice,
		TicketsSold:  input.TicketsSold,
	}, nil
}
