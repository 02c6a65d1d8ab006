package userbase

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dd0wney/userbase-seed/pkg/dataset"
)

const userbaseCSV = `User ID,Subscription Type,Monthly Revenue,Join Date,Country,Age,Gender,Device,Genres
1,Basic,10,15-01-22,United States,28,Male,Smartphone,"Drama, Comedy"
2,Premium,15,05-09-21,Canada,35.0,Female,Tablet,
3,Standard,,28-02-23,,NaN,,,"Action,,Thriller "
`

func readTable(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	table, err := dataset.ReadTable(strings.NewReader(csv))
	require.NoError(t, err)
	return table
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestMapRow_FullRecord(t *testing.T) {
	table := readTable(t, userbaseCSV)
	user, err := NewMapper().MapRow(table.Rows[0], rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.Equal(t, "user_000000", user.UserID)
	assert.Equal(t, "user_000000", user.Credentials.UserID)
	assert.Equal(t, "user_000000", user.Profile.UserID)
	assert.Equal(t, "user_000000@netflix.com", user.Credentials.Email)
	assert.Equal(t, md5Hex("password_user_000000"), user.Credentials.PasswordHash)

	require.NotNil(t, user.Profile.Age)
	assert.Equal(t, 28, *user.Profile.Age)
	require.NotNil(t, user.Profile.MonthlyRevenue)
	assert.Equal(t, 10.0, *user.Profile.MonthlyRevenue)
	assert.Equal(t, "United States", *user.Profile.Country)
	assert.Equal(t, "Basic", *user.Profile.SubscriptionType)
	assert.Equal(t, "Smartphone", *user.Profile.Device)
	assert.Equal(t, "Male", *user.Profile.Gender)
	assert.Equal(t, []string{"Drama", "Comedy"}, user.Profile.Genres)
	assert.GreaterOrEqual(t, user.LoginCount, 0)
	assert.LessOrEqual(t, user.LoginCount, MaxLoginCount)
}

func TestMapRow_FloatAgeAndEmptyGenres(t *testing.T) {
	table := readTable(t, userbaseCSV)
	user, err := NewMapper().MapRow(table.Rows[1], rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	require.NotNil(t, user.Profile.Age)
	assert.Equal(t, 35, *user.Profile.Age)
	assert.NotNil(t, user.Profile.Genres)
	assert.Empty(t, user.Profile.Genres)
}

func TestMapRow_MissingValuesSerializeAsNull(t *testing.T) {
	table := readTable(t, userbaseCSV)
	user, err := NewMapper().MapRow(table.Rows[2], rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.Nil(t, user.Profile.Age)
	assert.Nil(t, user.Profile.Country)
	assert.Nil(t, user.Profile.MonthlyRevenue)
	assert.Nil(t, user.Profile.Gender)
	assert.Nil(t, user.Profile.Device)
	assert.Equal(t, []string{"Action", "Thriller"}, user.Profile.Genres)

	data, err := json.Marshal(user.Profile)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"userId": "user_000002",
		"age": null,
		"country": null,
		"subscriptionType": "Standard",
		"device": null,
		"genres": ["Action", "Thriller"],
		"gender": null,
		"monthlyRevenue": null
	}`, string(data))
}

func TestUserJSONShape(t *testing.T) {
	age := 41
	country := "Brazil"
	user := User{
		UserID: "user_000007",
		Credentials: Credentials{
			UserID:       "user_000007",
			Email:        "user_000007@netflix.com",
			PasswordHash: "abc",
		},
		Profile: Profile{
			UserID:  "user_000007",
			Age:     &age,
			Country: &country,
			Genres:  []string{},
		},
		LoginCount: 12,
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"userId": "user_000007",
		"credentials": {"userId": "user_000007", "email": "user_000007@netflix.com", "passwordHash": "abc"},
		"profile": {
			"userId": "user_000007", "age": 41, "country": "Brazil", "subscriptionType": null,
			"device": null, "genres": [], "gender": null, "monthlyRevenue": null
		},
		"loginCount": 12
	}`, string(data))
}

func TestMapRow_BadAge(t *testing.T) {
	table := readTable(t, "Age,Country\nthirty,Canada\n")
	_, err := NewMapper().MapRow(table.Rows[0], rand.New(rand.NewSource(1)))

	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr), "expected *RowError, got %v", err)
	assert.Equal(t, 0, rowErr.Row)
	assert.Equal(t, ColumnAge, rowErr.Column)
	assert.Equal(t, "thirty", rowErr.Value)
	assert.ErrorIs(t, err, ErrBadValue)
}

func TestMapRow_BadRevenue(t *testing.T) {
	table := readTable(t, "Monthly Revenue\ninf\n")
	_, err := NewMapper().MapRow(table.Rows[0], rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrBadValue)
}

func TestMapRow_NegativeAgeFailsValidation(t *testing.T) {
	table := readTable(t, "Age\n-3\n")
	_, err := NewMapper().MapRow(table.Rows[0], rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.Contains(t, err.Error(), "profile.age")
}

func TestMapRow_BadEmailDomainFailsValidation(t *testing.T) {
	table := readTable(t, "Age\n30\n")
	_, err := NewMapper(WithEmailDomain("not a domain")).MapRow(table.Rows[0], rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestMapRow_NilRand(t *testing.T) {
	table := readTable(t, "Age\n30\n")
	_, err := NewMapper().MapRow(table.Rows[0], nil)
	assert.Error(t, err)
}

func TestMapTable(t *testing.T) {
	table := readTable(t, userbaseCSV)

	first, skipped, err := NewMapper().MapTable(table, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, first, 3)
	assert.Equal(t, []string{"user_000000", "user_000001", "user_000002"}, IDs(first))

	second, _, err := NewMapper().MapTable(table, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	for i := range first {
		assert.Equal(t, first[i].LoginCount, second[i].LoginCount, "login count row %d", i)
	}
}

func TestMapTable_StopsOrSkips(t *testing.T) {
	table := readTable(t, "Age\n20\nbad\n40\n")

	_, _, err := NewMapper().MapTable(table, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrBadValue)

	users, skipped, err := NewMapper(WithSkipInvalid(true)).MapTable(table, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, []string{"user_000000", "user_000002"}, IDs(users))
	require.Len(t, skipped, 1)
	assert.Equal(t, 1, skipped[0].Row)
}

func TestUUIDs(t *testing.T) {
	table := readTable(t, "Age\n20\n30\n")
	mapper := NewMapper(WithIDGenerator(UUIDs{}))

	a, _, err := mapper.MapTable(table, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	b, _, err := mapper.MapTable(table, rand.New(rand.NewSource(99)))
	require.NoError(t, err)

	assert.Equal(t, IDs(a), IDs(b))
	assert.NotEqual(t, a[0].UserID, a[1].UserID)
	for _, u := range a {
		parsed, err := uuid.Parse(u.UserID)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
		assert.Equal(t, u.UserID+"@netflix.com", u.Credentials.Email)
	}
}

func TestSequentialIDs(t *testing.T) {
	id, err := DefaultSequentialIDs().NewID(42, nil)
	require.NoError(t, err)
	assert.Equal(t, "user_000042", id)

	id, err = SequentialIDs{Prefix: "u", Width: 2}.NewID(1234, nil)
	require.NoError(t, err)
	assert.Equal(t, "u1234", id)

	_, err = DefaultSequentialIDs().NewID(-1, nil)
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	hash, err := BcryptHasher{Cost: bcrypt.MinCost}.Hash(PasswordFor("user_000001"))
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("password_user_000001")))

	_, err = BcryptHasher{Cost: bcrypt.MaxCost + 1}.Hash("x")
	assert.Error(t, err)
}

func TestMD5Hasher(t *testing.T) {
	hash, err := MD5Hasher{}.Hash("password_user_000000")
	require.NoError(t, err)
	assert.Len(t, hash, 32)
	assert.Equal(t, md5Hex("password_user_000000"), hash)
}
