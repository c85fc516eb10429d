package flash

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/pthm/inertia/lib/encoding"
)

// DefaultCookieName is the cookie CookieStore uses when none is configured.
const DefaultCookieName = "inertia_flash"

// CookieStore keeps flash data in a cookie sealed by lib/encoding.
//
// By default the cookie is signed (readable but tamper-proof). Set Sensitive
// to encrypt it instead.
type CookieStore struct {
	encoder   *encoding.Encoder
	Name      string
	Path      string
	Secure    bool
	Sensitive bool
}

// NewCookieStore creates a cookie store sealing with key.
func NewCookieStore(key []byte) (*CookieStore, error) {
	enc, err := encoding.NewEncoder(key)
	if err != nil {
		return nil, err
	}
	return &CookieStore{
		encoder: enc,
		Name:    DefaultCookieName,
		Path:    "/",
	}, nil
}

// Pull reads and expires the flash cookie. A cookie that fails to open is
// dropped and reported as an error, with zero Data.
func (s *CookieStore) Pull(ctx context.Context, w http.ResponseWriter, r *http.Request) (Data, error) {
	c, err := r.Cookie(s.Name)
	if errors.Is(err, http.ErrNoCookie) {
		return Data{}, nil
	}
	if err != nil {
		return Data{}, err
	}

	s.expire(w)

	var d Data
	if err := s.encoder.Decode(c.Value, s.Sensitive, &d); err != nil {
		return Data{}, err
	}
	return d, nil
}

// Put seals d into the flash cookie. Zero data expires the cookie instead.
func (s *CookieStore) Put(ctx context.Context, w http.ResponseWriter, r *http.Request, d Data) error {
	if d.IsZero() {
		s.expire(w)
		return nil
	}

	value, err := s.encoder.Encode(d, s.Sensitive)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.Name,
		Value:    value,
		Path:     s.Path,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *CookieStore) expire(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.Name,
		Value:    "",
		Path:     s.Path,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
