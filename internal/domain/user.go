package domain

import "time"

// User represents a registered rider or driver in the system.
type User struct {
	ID         string
	Name       string
	Email      string
	Occupation string // free-form course/occupation line
	BirthDate  time.Time
	PhotoURL   string
	Bio        string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Age derives the user's age in whole years at the given instant.
func (u *User) Age(now time.Time) int {
	years := now.Year() - u.BirthDate.Year()
	anniversary := u.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
