package pgsink

import (
	"github.com/dd0wney/userbase-seed/pkg/relationships"
	"github.com/dd0wney/userbase-seed/pkg/userbase"
)

var (
	credentialColumns = []string{"user_id", "email", "password_hash"}
	followColumns     = []string{"follower_id", "followed_id"}
)

// CredentialRecord is what LoadCredentials stores per user.
type CredentialRecord = userbase.Credentials

// FollowRecord is one follower -> followed pair.
type FollowRecord = relationships.Edge[string]

// Credentials extracts the credential part of each user.
func Credentials(users []*userbase.User) []CredentialRecord {
	out := make([]CredentialRecord, len(users))
	for i, u := range users {
		out[i] = u.Credentials
	}
	return out
}

// CredentialRows converts credentials to COPY rows in credentialColumns order.
func CredentialRows(creds []CredentialRecord) [][]any {
	rows := make([][]any, len(creds))
	for i, c := range creds {
		rows[i] = []any{c.UserID, c.Email, c.PasswordHash}
	}
	return rows
}

// FollowRows converts edges to COPY rows in followColumns order.
func FollowRows(edges []FollowRecord) [][]any {
	rows := make([][]any, len(edges))
	for i, e := range edges {
		rows[i] = []any{e.Source, e.Target}
	}
	return rows
}
