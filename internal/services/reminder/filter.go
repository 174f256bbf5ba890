package reminder

import "github.com/NordCoder/Remindus/internal/domain/user"

// FilterDue returns the users due at hour:minute, keeping their input order.
// It never validates records: malformed preferences just fail to match.
func FilterDue(users []user.User, hour, minute int) []user.User {
	due := make([]user.User, 0)
	for _, u := range users {
		if u.DueAt(hour, minute) {
			due = append(due, u)
		}
	}
	return due
}
