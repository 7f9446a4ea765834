package session

import (
	"net/http"
	"strings"
	"time"
)

// Attach resolves the session cookie and, when a live session exists, puts it
// on the request context. Requests without a session pass through untouched;
// whether an endpoint requires authentication is the router's decision.
func (m *Manager) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, found, err := m.Resolve(r)
		if err != nil {
			m.logger.Error("session resolve failed", "error", err, "path", r.URL.Path)
			next.ServeHTTP(w, r)
			return
		}
		if !found {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), sess)))
	})
}

// Enforce is the inactivity timeout check. It runs ahead of the activity
// recorder: a request that arrives past the threshold is logged out and
// redirected before the handler or the recorder ever see it. A stored
// timestamp that fails to parse is treated exactly like a timeout.
func (m *Manager) Enforce(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := FromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		raw, found, err := m.store.Get(r.Context(), sess.Token, KeyLastActivity)
		if err != nil {
			m.logger.Error("failed to read last activity", "error", err, "user_id", sess.UserID)
			next.ServeHTTP(w, r)
			return
		}
		if !found {
			// First request after login or a freshly flushed session: no
			// timeout to measure, the recorder seeds the value afterwards.
			next.ServeHTTP(w, r)
			return
		}

		lastActivity, err := time.Parse(LastActivityFormat, raw)
		if err != nil {
			m.logger.Warn("unparseable last activity, terminating session",
				"user_id", sess.UserID, "value", raw)
			m.expire(w, r, sess)
			return
		}

		elapsed := m.clock.Now().Sub(lastActivity)
		if elapsed > m.cfg.InactivityTimeout {
			m.logger.Info("session timed out",
				"user_id", sess.UserID,
				"elapsed", elapsed,
				"threshold", m.cfg.InactivityTimeout)
			m.expire(w, r, sess)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Record stamps the session with the current time on every qualifying
// request. Excluded paths and unauthenticated requests are no-ops. Two tabs
// racing here is a benign last-writer-wins race.
func (m *Manager) Record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := FromContext(r.Context())
		if ok && !m.isExemptPath(r.URL.Path) {
			now := m.clock.Now().Format(LastActivityFormat)
			if err := m.store.Set(r.Context(), sess.Token, KeyLastActivity, now); err != nil {
				m.logger.Error("failed to record activity", "error", err, "user_id", sess.UserID)
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Manager) expire(w http.ResponseWriter, r *http.Request, sess Session) {
	if err := m.Destroy(r.Context(), w, sess.Token); err != nil {
		m.logger.Error("failed to destroy expired session", "error", err, "user_id", sess.UserID)
	}
	http.Redirect(w, r, m.cfg.LoginPath, http.StatusFound)
}

func (m *Manager) isExemptPath(path string) bool {
	for _, prefix := range m.cfg.ExemptPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
