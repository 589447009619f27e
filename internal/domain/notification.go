package domain

// NotificationCopy is push notification microcopy for one user
type NotificationCopy struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
