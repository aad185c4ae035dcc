package domain

import "time"

// MethodHomeDelivery is the delivery method that requires an address and ZIP.
// Other method values are accepted as-is.
const MethodHomeDelivery = "Home Delivery"

type Order struct {
	ID        string     `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Phone     string     `json:"phone"`
	Method    string     `json:"method"`
	Address   string     `json:"address,omitempty"`
	Zip       string     `json:"zip,omitempty"`
	Items     []LineItem `json:"lessons"`
	CreatedAt time.Time  `json:"createdAt"`
}

// LineItem is one reserved position within an order. The lesson name is
// resolved at reservation time so the stored order does not depend on later
// catalog edits.
type LineItem struct {
	LessonID   int64  `json:"lessonId"`
	LessonName string `json:"lessonName"`
	Quantity   int    `json:"quantity"`
}
