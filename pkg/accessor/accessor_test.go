package accessor

import (
	"errors"
	"testing"
)

type profile struct {
	Email string `json:"email_address"`
}

type user struct {
	FirstName string
	Nickname  *string
	Profile   *profile
	Meta      map[string]any
	active    bool
	secret    string
}

func (u *user) IsActive() bool { return u.active }

func (u *user) GetSecret() (string, error) {
	if u.secret == "" {
		return "", errors.New("secret unavailable")
	}
	return u.secret, nil
}

func (u *user) Rename(string) {}

func TestReflect_ReadsFieldsMapsAndGetters(t *testing.T) {
	acc := New()
	u := &user{
		FirstName: "Ada",
		Profile:   &profile{Email: "ada@example.com"},
		Meta:      map[string]any{"role": "admin", "none": nil},
		active:    true,
		secret:    "s3cr3t",
	}

	cases := []struct {
		path string
		want any
	}{
		{path: "firstName", want: "Ada"},
		{path: "FirstName", want: "Ada"},
		{path: "active", want: true},
		{path: "secret", want: "s3cr3t"},
		{path: "profile.email_address", want: "ada@example.com"},
		{path: "profile.email", want: "ada@example.com"},
		{path: "meta.role", want: "admin"},
		{path: "meta.none", want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			if !acc.IsReadable(u, tc.path) {
				t.Fatalf("expected %q to be readable", tc.path)
			}
			got, err := acc.Value(u, tc.path)
			if err != nil {
				t.Fatalf("value: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestReflect_NilPointerFieldIsReadable(t *testing.T) {
	acc := New()
	u := &user{}

	if !acc.IsReadable(u, "nickname") {
		t.Fatalf("expected nil pointer field to be readable")
	}
	got, err := acc.Value(u, "nickname")
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if ptr, ok := got.(*string); !ok || ptr != nil {
		t.Fatalf("expected typed nil pointer, got %#v", got)
	}
}

func TestReflect_UnreadablePaths(t *testing.T) {
	acc := New()
	u := &user{}

	for _, path := range []string{"", "missing", "profile.email", "meta.role", "firstName.length", "rename", "a..b"} {
		if acc.IsReadable(u, path) {
			t.Fatalf("expected %q to be unreadable", path)
		}
		if _, err := acc.Value(u, path); !errors.Is(err, ErrNotReadable) {
			t.Fatalf("%q: expected ErrNotReadable, got %v", path, err)
		}
	}

	if acc.IsReadable(nil, "firstName") {
		t.Fatalf("expected nil instance to be unreadable")
	}
}

func TestReflect_GetterErrorSurfacesFromValue(t *testing.T) {
	acc := New()
	u := &user{}

	if !acc.IsReadable(u, "secret") {
		t.Fatalf("expected getter to count as readable")
	}
	if _, err := acc.Value(u, "secret"); err == nil {
		t.Fatalf("expected getter error to surface")
	}
}

func TestReflect_TypedMapKeys(t *testing.T) {
	type key string
	acc := New()
	values := map[key]int{"count": 3}

	got, err := acc.Value(values, "count")
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
	if acc.IsReadable(map[int]string{1: "x"}, "1") {
		t.Fatalf("expected non-string keyed map to be unreadable")
	}
}
