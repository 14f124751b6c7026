package logger

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Origin groups messages for repetition tracking.
type Origin int

const (
	OriginTransport Origin = iota
	OriginDecode
	OriginPlatform
	OriginThrottle
	OriginWorldContent
)

func (o Origin) String() string {
	switch o {
	case OriginTransport:
		return "transport"
	case OriginDecode:
		return "decode"
	case OriginPlatform:
		return "platform"
	case OriginThrottle:
		return "throttle"
	case OriginWorldContent:
		return "worldcontent"
	}
	return "unknown"
}

const (
	// Repeats of a message printed before it gets muted.
	spamThreshold = 2
	// Muted messages unseen for this long are forgotten.
	spamWindow = 5 * time.Minute
)

type spamlessEntry struct {
	msg      string
	amount   int
	lastSeen time.Time
}

// Spamless mutes messages that keep repeating for the same origin, so a
// polling caller hammering a failing endpoint doesn't flood its logs.
type Spamless struct {
	log *zap.SugaredLogger
	now func() time.Time

	mu      sync.Mutex
	entries map[Origin][]spamlessEntry
}

func NewSpamless(l *zap.Logger) *Spamless {
	return &Spamless{
		log:     l.WithOptions(zap.AddCallerSkip(1)).Sugar(),
		now:     time.Now,
		entries: make(map[Origin][]spamlessEntry),
	}
}

// ErrorIfNoSpam logs msg at error level unless it already repeated too often.
func (s *Spamless) ErrorIfNoSpam(origin Origin, msg string, keysAndValues ...interface{}) {
	show, mute := s.track(origin, msg)
	if show {
		s.log.Errorw(msg, append(keysAndValues, "origin", origin.String())...)
	}
	if mute {
		s.log.Infow("Muting further repetitive occurrences of this message.", "origin", origin.String())
	}
}

// WarnIfNoSpam is ErrorIfNoSpam at warn level.
func (s *Spamless) WarnIfNoSpam(origin Origin, msg string, keysAndValues ...interface{}) {
	show, mute := s.track(origin, msg)
	if show {
		s.log.Warnw(msg, append(keysAndValues, "origin", origin.String())...)
	}
	if mute {
		s.log.Infow("Muting further repetitive occurrences of this message.", "origin", origin.String())
	}
}

// InfoIfNoSpam stays quiet while origin has recent unmuted errors.
func (s *Spamless) InfoIfNoSpam(origin Origin, msg string, keysAndValues ...interface{}) {
	s.mu.Lock()
	now := s.now()
	for _, e := range s.entries[origin] {
		if e.amount <= spamThreshold && now.Sub(e.lastSeen) < spamWindow {
			s.mu.Unlock()
			return
		}
	}
	s.mu.Unlock()

	s.log.Infow(msg, append(keysAndValues, "origin", origin.String())...)
}

// Resolve forgets everything recorded for origin, e.g. after a call succeeds.
func (s *Spamless) Resolve(origin Origin) {
	s.mu.Lock()
	delete(s.entries, origin)
	s.mu.Unlock()
}

// track records msg and reports whether it should be printed and whether this
// is the occurrence after which it gets muted.
func (s *Spamless) track(origin Origin, msg string) (show, mute bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	list := s.entries[origin]
	for i := 0; i < len(list); i++ {
		e := list[i]
		if now.Sub(e.lastSeen) > spamWindow {
			list[i] = list[len(list)-1]
			list = list[:len(list)-1]
			i--
			continue
		}
		if e.msg != msg {
			continue
		}

		e.lastSeen = now
		if e.amount < spamThreshold {
			e.amount++
			show = true
		}
		if e.amount == spamThreshold {
			e.amount++
			mute = true
		}
		list[i] = e
		s.entries[origin] = list
		return show, mute
	}

	s.entries[origin] = append(list, spamlessEntry{msg: msg, lastSeen: now})
	return true, false
}
