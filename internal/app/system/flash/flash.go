// Package flash keeps one-shot messages ("Struktur berhasil disimpan.") in a
// signed cookie session so the next page load can show them.
package flash

import (
	"errors"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const DefaultSessionName = "kemahasiswaan-session"

// Store wraps a gorilla cookie store.
type Store struct {
	cookies *sessions.CookieStore
	name    string
	log     *zap.Logger
}

// New builds a flash store. An empty key gets a random one, which means
// messages do not survive a restart; fine for development only.
//
// With secure=true cookies are Secure + SameSite=None so a front end served
// from another origin still sends them. Local http:// development uses Lax.
func New(sessionKey, name, domain string, secure bool, logger *zap.Logger) *Store {
	key := []byte(sessionKey)
	switch {
	case len(key) == 0:
		key = securecookie.GenerateRandomKey(32)
		logger.Warn("session key not configured; using a random key")
	case len(key) < 32:
		logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(key)))
	}
	if name == "" {
		name = DefaultSessionName
	}

	cs := sessions.NewCookieStore(key)
	cs.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		cs.Options.SameSite = http.SameSiteNoneMode
	}

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &Store{cookies: cs, name: name, log: logger}
}

// session returns the current session. A cookie signed with an old key is
// discarded and a fresh session is used instead.
func (s *Store) session(r *http.Request) *sessions.Session {
	sess, err := s.cookies.Get(r, s.name)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			s.log.Debug("discarding undecodable session cookie", zap.Error(err))
		} else {
			s.log.Warn("session get failed", zap.Error(err))
		}
	}
	return sess
}

// Add queues msg for the next Pop in this browser session.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, msg string) error {
	sess := s.session(r)
	sess.AddFlash(msg)
	return sess.Save(r, w)
}

// Pop returns and clears the queued messages. It must run before anything
// is written to w.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []string {
	sess := s.session(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		s.log.Warn("session save failed", zap.Error(err))
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if m, ok := f.(string); ok {
			out = append(out, m)
		}
	}
	return out
}
