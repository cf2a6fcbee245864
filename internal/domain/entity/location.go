package entity

// Location is one (state, city, pincode) row of the serviceable-area index.
type Location struct {
	State   string `json:"state" firestore:"state"`
	City    string `json:"city" firestore:"city"`
	Pincode string `json:"pincode" firestore:"pincode"`
}
