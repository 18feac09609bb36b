package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashRoundTrip(t *testing.T) {
	flashes := []Flash{
		{Category: "warning", Message: "User already exists!"},
		{Category: "success", Message: `with <a href="#">markup</a>`, Safe: true},
	}
	encoded, err := encodeFlashes(flashes)
	require.NoError(t, err)
	assert.Equal(t, flashes, decodeFlashes(encoded))
}

func TestDecodeFlashesGarbage(t *testing.T) {
	assert.Nil(t, decodeFlashes("not base64!!"))
	assert.Nil(t, decodeFlashes(""))
}

func TestPopFlashesClearsCookie(t *testing.T) {
	s := &Server{}
	encoded, err := encodeFlashes([]Flash{{Category: "info", Message: "hi"}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: encoded})
	w := httptest.NewRecorder()

	flashes := s.popFlashes(w, req)
	require.Len(t, flashes, 1)
	assert.Equal(t, "hi", flashes[0].Message)

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "queue cookie must be dropped after draining")
}

func TestAddFlashAppends(t *testing.T) {
	s := &Server{}
	encoded, err := encodeFlashes([]Flash{{Category: "info", Message: "first"}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: encoded})
	w := httptest.NewRecorder()
	s.addFlash(w, req, "danger", "second")

	var value string
	for _, c := range w.Result().Cookies() {
		if c.Name == flashCookie {
			value = c.Value
		}
	}
	flashes := decodeFlashes(value)
	require.Len(t, flashes, 2)
	assert.Equal(t, "first", flashes[0].Message)
	assert.Equal(t, "second", flashes[1].Message)
}
