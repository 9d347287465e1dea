package posters

import "fmt"

const defaultStyle = "rock"

// ShowDetails carries the show metadata a poster is generated from. Only
// the band name is required.
type ShowDetails struct {
	BandName  string `json:"bandName"`
	ShowTitle string `json:"showTitle"`
	Venue     string `json:"venue"`
	Date      string `json:"date"`
	Style     string `json:"style"`
}

// BuildPrompt concatenates the present show fields into the generation
// prompt, defaulting the style tag to "rock".
func BuildPrompt(details ShowDetails) string {
	prompt := fmt.Sprintf("Concert poster for %q", details.BandName)

	if details.ShowTitle != "" {
		prompt += fmt.Sprintf(" performing %q", details.ShowTitle)
	}
	if details.Venue != "" {
		prompt += " at " + details.Venue
	}
	if details.Date != "" {
		prompt += " on " + details.Date
	}

	style := details.Style
	if style == "" {
		style = defaultStyle
	}
	prompt += ", " + style + " music style, vibrant colors, professional concert poster design, bold typography, artistic, high quality"

	return prompt
}
