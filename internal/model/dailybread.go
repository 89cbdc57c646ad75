package model

// DailyBread is a daily devotional entry: a scripture verse with a short
// reflection. One entry is surfaced per calendar day, cycling through the
// embedded list.
type DailyBread struct {
	Title string `json:"title"`
	Verse string `json:"verse"`
	Body  string `json:"body"`
}
