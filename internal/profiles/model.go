package profiles

import "time"

// Address is the postal address block. It is stored and updated as a unit:
// either all four fields arrive together or none of them do.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// Profile is the stored contact record for one user.
type Profile struct {
	UserID    string    `json:"userId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   *Address  `json:"address,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Update carries a validated profile patch. Nil Phone/Address mean "leave the
// stored value alone"; the required identity fields always overwrite.
type Update struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	Address   *Address
}
