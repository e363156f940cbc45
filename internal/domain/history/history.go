// Package history provides the append-only play event log.
package history

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/osa030/spotifum/internal/domain/track"
)

// Event records one play of a track by a user.
type Event struct {
	ID        string      `json:"id"`
	UserEmail string      `json:"user_email"`
	Track     track.Track `json:"track"`
	PlayedAt  time.Time   `json:"played_at"`
}

// NewEvent creates an event with a fresh id and a snapshot of t.
func NewEvent(userEmail string, t track.Track, playedAt time.Time) Event {
	return Event{
		ID:        uuid.NewString(),
		UserEmail: userEmail,
		Track:     t.Clone(),
		PlayedAt:  playedAt,
	}
}

func (e Event) clone() Event {
	e.Track = e.Track.Clone()
	return e
}

// Log is an append-only sequence of events in insertion order.
type Log struct {
	events []Event
}

// NewLog creates a log holding copies of events.
func NewLog(events []Event) *Log {
	l := &Log{}
	for _, e := range events {
		l.events = append(l.events, e.clone())
	}
	return l
}

// Append adds an event to the end of the log.
func (l *Log) Append(e Event) {
	l.events = append(l.events, e.clone())
}

// Len returns the number of events.
func (l *Log) Len() int {
	return len(l.events)
}

// Events returns a copy of every event.
func (l *Log) Events() []Event {
	return cloneEvents(l.events)
}

// ForUser returns a copy of the events of one user.
func (l *Log) ForUser(email string) []Event {
	var out []Event
	for _, e := range l.events {
		if e.UserEmail == email {
			out = append(out, e.clone())
		}
	}
	return out
}

// Between returns a copy of the events with from <= PlayedAt <= to.
// A zero bound is open.
func (l *Log) Between(from, to time.Time) []Event {
	var out []Event
	for _, e := range l.events {
		if !from.IsZero() && e.PlayedAt.Before(from) {
			continue
		}
		if !to.IsZero() && e.PlayedAt.After(to) {
			continue
		}
		out = append(out, e.clone())
	}
	return out
}

// HeardBefore reports whether the user has any event for the named track.
func (l *Log) HeardBefore(email, trackName string) bool {
	return slices.ContainsFunc(l.events, func(e Event) bool {
		return e.UserEmail == email && e.Track.Name == trackName
	})
}

func cloneEvents(events []Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = e.clone()
	}
	return out
}
