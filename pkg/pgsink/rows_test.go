package pgsink

import (
	"reflect"
	"testing"

	"github.com/dd0wney/userbase-seed/pkg/relationships"
	"github.com/dd0wney/userbase-seed/pkg/userbase"
)

func TestCredentialRows(t *testing.T) {
	users := []*userbase.User{
		{UserID: "user_000000", Credentials: userbase.Credentials{
			UserID: "user_000000", Email: "user_000000@netflix.com", PasswordHash: "h0",
		}},
		{UserID: "user_000001", Credentials: userbase.Credentials{
			UserID: "user_000001", Email: "user_000001@netflix.com", PasswordHash: "h1",
		}},
	}

	got := CredentialRows(Credentials(users))
	want := [][]any{
		{"user_000000", "user_000000@netflix.com", "h0"},
		{"user_000001", "user_000001@netflix.com", "h1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CredentialRows() = %v, want %v", got, want)
	}
	for i, row := range got {
		if len(row) != len(credentialColumns) {
			t.Errorf("row %d has %d values for %d columns", i, len(row), len(credentialColumns))
		}
	}
}

func TestFollowRows(t *testing.T) {
	edges := []relationships.Edge[string]{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "a"},
	}

	got := FollowRows(edges)
	want := [][]any{{"a", "b"}, {"b", "a"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FollowRows() = %v, want %v", got, want)
	}
}

func TestRows_Empty(t *testing.T) {
	if rows := CredentialRows(nil); len(rows) != 0 {
		t.Errorf("expected no rows, got %v", rows)
	}
	if rows := FollowRows(nil); len(rows) != 0 {
		t.Errorf("expected no rows, got %v", rows)
	}
}
