package cookie_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kroobeet/engine/pkg/cookie"
)

const testSecret = "this-is-a-32-byte-or-longer-key!"

// replay copies the cookies written to w onto a fresh request.
func replay(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManager_Plain(t *testing.T) {
	t.Parallel()
	m := cookie.New()
	require.False(t, m.Signed())

	_, err := m.Read(httptest.NewRequest(http.MethodGet, "/", nil), "sid")
	require.ErrorIs(t, err, cookie.ErrNotFound)

	w := httptest.NewRecorder()
	m.Write(w, "sid", "abc", 3600)

	c := w.Result().Cookies()[0]
	require.Equal(t, "abc", c.Value)
	require.Equal(t, 3600, c.MaxAge)

	val, err := m.Read(replay(w), "sid")
	require.NoError(t, err)
	require.Equal(t, "abc", val)
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()
	m := cookie.New(cookie.WithSecret(testSecret))
	require.True(t, m.Signed())

	w := httptest.NewRecorder()
	m.Write(w, "sid", "abc", 0)
	require.NotEqual(t, "abc", w.Result().Cookies()[0].Value)

	val, err := m.Read(replay(w), "sid")
	require.NoError(t, err)
	require.Equal(t, "abc", val)

	other := cookie.New(cookie.WithSecret("another-secret-of-at-least-32-bytes"))
	_, err = other.Read(replay(w), "sid")
	require.ErrorIs(t, err, cookie.ErrSignature)
}

func TestManager_SignedRejectsTampering(t *testing.T) {
	t.Parallel()
	m := cookie.New(cookie.WithSecret(testSecret))

	for _, raw := range []string{"abc", "dGFtcGVyZWQ.invalid", "!!.!!", "YWJj."} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "sid", Value: raw})
		if _, err := m.Read(r, "sid"); !errors.Is(err, cookie.ErrSignature) {
			t.Errorf("Read(%q) error = %v, want ErrSignature", raw, err)
		}
	}
}

func TestWithSecret_TooShort(t *testing.T) {
	t.Parallel()
	require.False(t, cookie.New(cookie.WithSecret("short")).Signed())
}

func TestValidateSecret(t *testing.T) {
	t.Parallel()
	require.NoError(t, cookie.ValidateSecret(""))
	require.NoError(t, cookie.ValidateSecret(testSecret))
	require.ErrorIs(t, cookie.ValidateSecret("short"), cookie.ErrBadSecret)
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	cookie.New(cookie.WithSecret(testSecret)).Delete(w, "sid")

	c := w.Result().Cookies()[0]
	require.Equal(t, "sid", c.Name)
	require.Empty(t, c.Value)
	require.Equal(t, -1, c.MaxAge)
}

func TestManager_Attributes(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		w := httptest.NewRecorder()
		cookie.New().Write(w, "sid", "v", 0)
		c := w.Result().Cookies()[0]

		require.Equal(t, "/", c.Path)
		require.True(t, c.HttpOnly)
		require.False(t, c.Secure)
		require.Equal(t, http.SameSiteLaxMode, c.SameSite)
	})

	t.Run("configured", func(t *testing.T) {
		w := httptest.NewRecorder()
		cookie.New(
			cookie.WithDomain("example.com"),
			cookie.WithPath("/app"),
			cookie.WithSecure(true),
			cookie.WithHTTPOnly(false),
			cookie.WithSameSite(http.SameSiteStrictMode),
		).Write(w, "sid", "v", 0)
		c := w.Result().Cookies()[0]

		require.Equal(t, "example.com", c.Domain)
		require.Equal(t, "/app", c.Path)
		require.True(t, c.Secure)
		require.False(t, c.HttpOnly)
		require.Equal(t, http.SameSiteStrictMode, c.SameSite)
	})
}
