package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	userIDKey   = "user_id"
	usernameKey = "username"
	roleKey     = "role"
)

type ctxKey string

const sessionCtxKey ctxKey = "session"

// SessionManager хранит сессию в подписанной cookie и кладет domain.Session в контекст запроса
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

func NewSessionManager(key, name string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if key == "" {
		return nil, errors.New("session key is empty")
	}
	if len(key) < sessionKeyLength {
		logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(key)))
	}

	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionManager{
		store: store,
		name:  name,
		log:   logger,
	}, nil
}

const sessionKeyLength = 32

// ResolveSessionKey возвращает ключ подписи cookie. Без SESSION_KEY вне prod
// генерируется случайный ключ: сессии не переживут перезапуск процесса.
func ResolveSessionKey(key string, allowRandom bool, logger *zap.Logger) (string, error) {
	if key != "" {
		return key, nil
	}
	if !allowRandom {
		return "", errors.New("SESSION_KEY is required")
	}

	generated := securecookie.GenerateRandomKey(sessionKeyLength)
	if generated == nil {
		return "", errors.New("failed to generate session key")
	}
	logger.Warn("SESSION_KEY is not set, using a random per-process key")

	return string(generated), nil
}

// CurrentSession возвращает сессию, загруженную LoadSession
func CurrentSession(r *http.Request) (domain.Session, bool) {
	s, ok := r.Context().Value(sessionCtxKey).(domain.Session)
	return s, ok
}

func withSession(r *http.Request, s domain.Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessionCtxKey, s))
}

// LoadSession читает cookie и, если пользователь вошел, кладет сессию в контекст
func (m *SessionManager) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.store.Get(r, m.name)
		if err != nil {
			var scErr securecookie.Error
			if errors.As(err, &scErr) && scErr.IsDecode() {
				m.log.Debug("invalid session cookie ignored", zap.Error(err))
			} else {
				m.log.Warn("session store error", zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		userID, _ := sess.Values[userIDKey].(string)
		if userID != "" {
			username, _ := sess.Values[usernameKey].(string)
			role, _ := sess.Values[roleKey].(string)
			r = withSession(r, domain.Session{
				UserID:   userID,
				Username: username,
				Role:     domain.Role(role),
			})
		}

		next.ServeHTTP(w, r)
	})
}

func (m *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentSession(r); !ok {
			writeError(w, http.StatusUnauthorized, domain.CodeUnauthorized, domain.ErrUnauthorized.Message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin: 401 без сессии, 403 для роли employee
func (m *SessionManager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := CurrentSession(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, domain.CodeUnauthorized, domain.ErrUnauthorized.Message)
			return
		}
		if !s.IsAdmin() {
			writeError(w, http.StatusForbidden, domain.CodeForbidden, domain.ErrForbidden.Message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Save записывает пользователя в новую сессию
func (m *SessionManager) Save(w http.ResponseWriter, r *http.Request, user *domain.User) error {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		// битая cookie: store.Get уже вернул новую пустую сессию
		m.log.Debug("replacing unreadable session", zap.Error(err))
	}

	sess.Values[userIDKey] = user.ID
	sess.Values[usernameKey] = user.Username
	sess.Values[roleKey] = string(user.Role)

	return sess.Save(r, w)
}

// Clear удаляет cookie сессии
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}
