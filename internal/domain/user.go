package domain

// User is the persisted session identity. Its presence in the session store
// selects authenticated mode; absence means anonymous.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}
