package forms

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formRequest(t *testing.T, values url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestRegisterFormValid(t *testing.T) {
	req := formRequest(t, url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"long-enough-password"},
	})
	form := ParseRegister(req)
	assert.Nil(t, Validate(form))
}

func TestRegisterFormErrors(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		field  string
		msg    string
	}{
		{
			"missing username",
			url.Values{"email": {"a@b.com"}, "password": {"long-enough-1"}},
			"username", "This field is required.",
		},
		{
			"bad email",
			url.Values{"username": {"alice"}, "email": {"nope"}, "password": {"long-enough-1"}},
			"email", "Invalid email address.",
		},
		{
			"short password",
			url.Values{"username": {"alice"}, "email": {"a@b.com"}, "password": {"short"}},
			"password", "Must be at least 8 characters long.",
		},
		{
			"long password",
			url.Values{"username": {"alice"}, "email": {"a@b.com"}, "password": {strings.Repeat("p", 80)}},
			"password", "Must be at most 72 characters long.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(ParseRegister(formRequest(t, tt.values)))
			require.NotNil(t, errs)
			assert.Equal(t, tt.msg, errs[tt.field])
		})
	}
}

func TestLoginFormRequiresBothFields(t *testing.T) {
	errs := Validate(ParseLogin(formRequest(t, url.Values{})))
	require.NotNil(t, errs)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestBootswatchFormChoices(t *testing.T) {
	for _, theme := range Themes {
		errs := Validate(&BootswatchForm{Theme: theme})
		assert.Nil(t, errs, theme)
	}
	errs := Validate(&BootswatchForm{Theme: "neon"})
	require.NotNil(t, errs)
	assert.Equal(t, "Not a valid choice.", errs["theme"])
}

func TestHelloFormRemember(t *testing.T) {
	req := formRequest(t, url.Values{"name": {"Grey"}, "remember": {"on"}})
	form := ParseHello(req)
	assert.True(t, form.Remember)
	assert.Nil(t, Validate(form))

	req = formRequest(t, url.Values{"name": {strings.Repeat("n", 30)}})
	form = ParseHello(req)
	assert.False(t, form.Remember)
	assert.NotNil(t, Validate(form))
}
