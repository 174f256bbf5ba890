package user

// User is a read-only snapshot of one user's reminder preferences.
type User struct {
	ID                  string `json:"id"`
	NotificationEnabled bool   `json:"notification_enabled"`
	NotificationHour    int    `json:"notification_hour"`
	NotificationMinute  int    `json:"notification_minute"`
	DeliveryToken       string `json:"fcm_token"`
}

// DueAt reports whether u should be reminded at the given hour and minute.
// Out-of-range preferences simply never match.
func (u User) DueAt(hour, minute int) bool {
	return u.NotificationEnabled &&
		u.NotificationHour == hour &&
		u.NotificationMinute == minute &&
		u.DeliveryToken != ""
}
