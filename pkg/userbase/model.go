package userbase

// Dataset column names.
const (
	ColumnAge              = "Age"
	ColumnCountry          = "Country"
	ColumnSubscriptionType = "Subscription Type"
	ColumnDevice           = "Device"
	ColumnGenres           = "Genres"
	ColumnGender           = "Gender"
	ColumnMonthlyRevenue   = "Monthly Revenue"
)

// User is one seeded account. Credentials feed the relational store, Profile
// the document store and LoginCount the counter cache of the consuming backend.
type User struct {
	UserID      string      `json:"userId" validate:"required"`
	Credentials Credentials `json:"credentials"`
	Profile     Profile     `json:"profile"`
	LoginCount  int         `json:"loginCount" validate:"gte=0,lte=100"`
}

type Credentials struct {
	UserID       string `json:"userId" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	PasswordHash string `json:"passwordHash" validate:"required"`
}

// Profile fields are nil when the source cell was missing and serialize as null.
// Genres is never nil.
type Profile struct {
	UserID           string   `json:"userId" validate:"required"`
	Age              *int     `json:"age" validate:"omitempty,gte=0"`
	Country          *string  `json:"country"`
	SubscriptionType *string  `json:"subscriptionType"`
	Device           *string  `json:"device"`
	Genres           []string `json:"genres"`
	Gender           *string  `json:"gender"`
	MonthlyRevenue   *float64 `json:"monthlyRevenue" validate:"omitempty,gte=0"`
}

// IDs returns the user identifiers in record order.
func IDs(users []*User) []string {
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.UserID
	}
	return ids
}
