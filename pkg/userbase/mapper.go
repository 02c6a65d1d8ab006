package userbase

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/dd0wney/userbase-seed/pkg/dataset"
	"github.com/dd0wney/userbase-seed/pkg/validation"
)

const (
	DefaultEmailDomain = "netflix.com"
	MaxLoginCount      = 100
)

// Mapper turns dataset rows into User records.
type Mapper struct {
	ids         IDGenerator
	hasher      PasswordHasher
	emailDomain string
	skipInvalid bool
}

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

func WithIDGenerator(g IDGenerator) MapperOption {
	return func(m *Mapper) { m.ids = g }
}

func WithPasswordHasher(h PasswordHasher) MapperOption {
	return func(m *Mapper) { m.hasher = h }
}

func WithEmailDomain(domain string) MapperOption {
	return func(m *Mapper) { m.emailDomain = domain }
}

// WithSkipInvalid makes MapTable collect row errors instead of stopping at the first.
func WithSkipInvalid(skip bool) MapperOption {
	return func(m *Mapper) { m.skipInvalid = skip }
}

// NewMapper returns a Mapper using sequential ids, MD5 hashes and the netflix.com domain
// unless overridden.
func NewMapper(opts ...MapperOption) *Mapper {
	m := &Mapper{
		ids:         DefaultSequentialIDs(),
		hasher:      MD5Hasher{},
		emailDomain: DefaultEmailDomain,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MapRow builds the User for row. rng supplies the login count and, for
// random id schemes, the identifier; the id is drawn first.
func (m *Mapper) MapRow(row dataset.Row, rng *rand.Rand) (*User, error) {
	if rng == nil {
		return nil, errors.New("random source is nil")
	}

	id, err := m.ids.NewID(row.Index, rng)
	if err != nil {
		return nil, &RowError{Row: row.Index, Cause: err}
	}

	hash, err := m.hasher.Hash(PasswordFor(id))
	if err != nil {
		return nil, &RowError{Row: row.Index, Cause: err}
	}

	profile := Profile{
		UserID:           id,
		Country:          optionalString(row, ColumnCountry),
		SubscriptionType: optionalString(row, ColumnSubscriptionType),
		Device:           optionalString(row, ColumnDevice),
		Genres:           splitGenres(row),
		Gender:           optionalString(row, ColumnGender),
	}

	if raw, ok := row.Get(ColumnAge); ok {
		age, err := parseWhole(raw)
		if err != nil {
			return nil, badValue(row.Index, ColumnAge, raw, err)
		}
		profile.Age = &age
	}

	if raw, ok := row.Get(ColumnMonthlyRevenue); ok {
		revenue, err := parseFinite(raw)
		if err != nil {
			return nil, badValue(row.Index, ColumnMonthlyRevenue, raw, err)
		}
		profile.MonthlyRevenue = &revenue
	}

	user := &User{
		UserID: id,
		Credentials: Credentials{
			UserID:       id,
			Email:        id + "@" + m.emailDomain,
			PasswordHash: hash,
		},
		Profile:    profile,
		LoginCount: rng.Intn(MaxLoginCount + 1),
	}

	if err := validation.Struct(user); err != nil {
		return nil, &RowError{Row: row.Index, Cause: fmt.Errorf("%w: %w", ErrInvalidRecord, err)}
	}

	return user, nil
}

// MapTable maps every row in order. Without WithSkipInvalid the first row error
// aborts the table; with it, failed rows are returned alongside the mapped users.
func (m *Mapper) MapTable(table *dataset.Table, rng *rand.Rand) ([]*User, []*RowError, error) {
	users := make([]*User, 0, table.Len())
	var skipped []*RowError

	for _, row := range table.Rows {
		user, err := m.MapRow(row, rng)
		if err != nil {
			var rowErr *RowError
			if m.skipInvalid && errors.As(err, &rowErr) {
				skipped = append(skipped, rowErr)
				continue
			}
			return nil, nil, err
		}
		users = append(users, user)
	}

	return users, skipped, nil
}

func badValue(row int, column, raw string, cause error) *RowError {
	return &RowError{
		Row:    row,
		Column: column,
		Value:  raw,
		Cause:  fmt.Errorf("%w: %v", ErrBadValue, cause),
	}
}

func optionalString(row dataset.Row, column string) *string {
	v, ok := row.Get(column)
	if !ok {
		return nil
	}
	return &v
}

// splitGenres splits a comma separated cell, dropping blank entries.
func splitGenres(row dataset.Row) []string {
	genres := []string{}
	raw, ok := row.Get(ColumnGenres)
	if !ok {
		return genres
	}
	for _, g := range strings.Split(raw, ",") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// parseWhole accepts integers and floats, truncating toward zero ("28.0" -> 28).
func parseWhole(raw string) (int, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := parseFinite(raw)
	if err != nil {
		return 0, err
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%s out of range", raw)
	}
	return int(math.Trunc(f)), nil
}

func parseFinite(raw string) (float64, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%s is not finite", raw)
	}
	return f, nil
}
