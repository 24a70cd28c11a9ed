package models

type User struct {
	Username       string   `json:"username"`
	PasswordHash   string   `json:"-"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	IsAdmin        bool     `json:"isAdmin"`
	PhoneNumber    string   `json:"phoneNumber"`
	ProfilePicture *string  `json:"profilePicture"`
	Rating         *float64 `json:"rating"`
	NumRatings     int      `json:"numRatings"`
}

// UserPatch is a partial profile update; nil fields are left untouched.
type UserPatch struct {
	FirstName      *string `json:"firstName" validate:"omitempty,min=1,max=30"`
	LastName       *string `json:"lastName" validate:"omitempty,min=1,max=30"`
	Email          *string `json:"email" validate:"omitempty,email,max=60"`
	PhoneNumber    *string `json:"phoneNumber" validate:"omitempty,min=7,max=20"`
	ProfilePicture *string `json:"profilePicture" validate:"omitempty,max=255"`
}

func (p UserPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.PhoneNumber == nil && p.ProfilePicture == nil
}

type UserFilter struct {
	Username  string
	MinRating *float64
}

// Profile is a user with the posts they made and, for the user themselves or
// an admin, the transactions they took part in.
type Profile struct {
	User
	Posts        []Post        `json:"posts"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

// NewUser is a registration request.
type NewUser struct {
	Username       string  `json:"username" validate:"required,min=1,max=25"`
	Password       string  `json:"password" validate:"required,min=5,max=72"`
	FirstName      string  `json:"firstName" validate:"required,min=1,max=30"`
	LastName       string  `json:"lastName" validate:"required,min=1,max=30"`
	Email          string  `json:"email" validate:"required,email,max=60"`
	PhoneNumber    string  `json:"phoneNumber" validate:"required,min=7,max=20"`
	ProfilePicture *string `json:"profilePicture" validate:"omitempty,max=255"`
}

// Caller is whoever an operation is performed on behalf of.
type Caller struct {
	Username string
	IsAdmin  bool
}

// Can reports whether the caller may act on something owned by username.
func (c Caller) Can(username string) bool {
	return c.IsAdmin || c.Username == username
}
