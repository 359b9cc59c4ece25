// Package service holds the todo commands and queries. Every operation runs in one
// store transaction and returns repository.ErrNotFound / repository.ErrConflict
// (or ErrBadParameter) untouched so the transport can tell them apart.
package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"todo/internal/model"
)

var ErrBadParameter = errors.New("bad parameter")

// requireText trims s and checks it is neither blank nor longer than max characters.
func requireText(field, s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.Wrapf(ErrBadParameter, "%s is required", field)
	}
	if utf8.RuneCountInString(s) > max {
		return "", errors.Wrapf(ErrBadParameter, "%s must be at most %d characters", field, max)
	}
	return s, nil
}

// Notifier receives domain events once the transaction that produced them committed.
type Notifier interface {
	ItemCompleted(ctx context.Context, event model.ItemCompleted)
	SoftDeleted(ctx context.Context, entity string, count int)
}

type nopNotifier struct{}

func (nopNotifier) ItemCompleted(context.Context, model.ItemCompleted) {}
func (nopNotifier) SoftDeleted(context.Context, string, int)           {}

// Options are the collaborators shared by the services. Zero fields get defaults.
type Options struct {
	Now          func() time.Time
	Notifier     Notifier
	ColourPolicy model.ColourPolicy
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	if o.Notifier == nil {
		o.Notifier = nopNotifier{}
	}
	if o.ColourPolicy == nil {
		o.ColourPolicy = model.FreeformColours{}
	}
	return o
}
