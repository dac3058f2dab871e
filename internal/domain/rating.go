package domain

import "time"

// Rating is a passenger's review of a ride's driver after a completed
// ride. Scores are integers in [1,5]; the driver's reputation is the
// mean of all scores recorded against them.
type Rating struct {
	ID        string
	RideID    string
	AuthorID  string // rider who wrote the review
	DriverID  string // ride's driver, copied at creation
	Score     int
	Comment   string
	CreatedAt time.Time
}
