// Package session holds the caller's locale preferences and access token and
// applies them to outgoing catalog requests.
package session

import (
	"net/http"

	"github.com/Sternrassler/vod-catalog-client/pkg/filter"
	"github.com/samber/mo"
)

// Query keys added by ApplyLocaleQuery.
const (
	KeyLocale                 = "locale"
	KeyPreferredAudioLanguage = "preferred_audio_language"
)

// Session is immutable after New and safe to share between goroutines.
type Session struct {
	locale         filter.Locale
	preferredAudio mo.Option[filter.Locale]
	accessToken    string
}

// Option configures a Session.
type Option func(*Session)

// WithAccessToken sets the bearer token sent with every request.
func WithAccessToken(token string) Option {
	return func(s *Session) {
		s.accessToken = token
	}
}

// WithPreferredAudio sets the preferred audio language sent with locale-aware requests.
func WithPreferredAudio(locale filter.Locale) Option {
	return func(s *Session) {
		s.preferredAudio = mo.Some(locale)
	}
}

// New creates a session for the given display locale.
func New(locale filter.Locale, opts ...Option) *Session {
	s := &Session{
		locale:         locale,
		preferredAudio: mo.None[filter.Locale](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Locale returns the display locale.
func (s *Session) Locale() filter.Locale {
	return s.locale
}

// PreferredAudio returns the preferred audio language, if any.
func (s *Session) PreferredAudio() mo.Option[filter.Locale] {
	return s.preferredAudio
}

// ApplyLocaleQuery returns params with the locale entries appended.
// params is not modified. A nil session returns params unchanged.
func (s *Session) ApplyLocaleQuery(params filter.List) filter.List {
	if s == nil {
		return params
	}
	out := params.Append(KeyLocale, string(s.locale))
	if audio, ok := s.preferredAudio.Get(); ok {
		out = out.Append(KeyPreferredAudioLanguage, string(audio))
	}
	return out
}

// Authorize sets the Authorization header when an access token is configured.
func (s *Session) Authorize(req *http.Request) {
	if s == nil || s.accessToken == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
}
