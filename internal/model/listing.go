package model

// Listing is one shipment record. Quantity lives in the `status` column
// of the vaccines table, a quirk inherited from the original schema.
type Listing struct {
	ID          string `json:"v_id"`
	Quantity    int64  `json:"quantity"`
	Origin      string `json:"loc1"`
	Destination string `json:"loc2"`
	VaccineType string `json:"type"`
	UserID      string `json:"user_id"`
	Ctime       int64  `json:"ctime"`
}

// ListingWithOwner annotates a listing with the poster's display name
// for the public gallery.
type ListingWithOwner struct {
	Listing
	OwnerName string `json:"owner_name"`
}
