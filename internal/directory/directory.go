// Package directory implements the in-memory phonebook keyed by contact code.
package directory

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/smileynet/phonebook/internal/contact"
)

var (
	// ErrDuplicate indicates a contact with the same code is already stored.
	ErrDuplicate = errors.New("directory: duplicate code")
	// ErrNotFound indicates no contact is stored under the requested code.
	ErrNotFound = errors.New("directory: code not found")
)

// Directory maps contact codes to contacts and remembers insertion order.
// It is not safe for concurrent use; a session drives it from one goroutine.
type Directory struct {
	byCode map[string]contact.Contact
	order  []string
	logger *zap.Logger
}

// Option configures a Directory.
type Option func(*Directory)

// WithLogger sets the logger used for mutation events.
func WithLogger(l *zap.Logger) Option {
	return func(d *Directory) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates an empty Directory.
func New(opts ...Option) *Directory {
	d := &Directory{
		byCode: make(map[string]contact.Contact),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Add stores c under its code. If the code is taken the directory is left
// unchanged and ErrDuplicate is returned.
func (d *Directory) Add(c contact.Contact) error {
	if _, ok := d.byCode[c.Code()]; ok {
		d.logger.Debug("add rejected", zap.String("code", c.Code()))
		return fmt.Errorf("%w: %q", ErrDuplicate, c.Code())
	}
	d.byCode[c.Code()] = c
	d.order = append(d.order, c.Code())
	d.logger.Debug("contact added", zap.String("code", c.Code()), zap.Int("size", len(d.order)))
	return nil
}

// Remove deletes the contact stored under key.
func (d *Directory) Remove(key string) error {
	if _, ok := d.byCode[key]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	delete(d.byCode, key)
	d.order = slices.DeleteFunc(d.order, func(k string) bool { return k == key })
	d.logger.Debug("contact removed", zap.String("code", key), zap.Int("size", len(d.order)))
	return nil
}

// Find returns the contact stored under key. A missing key reports false.
func (d *Directory) Find(key string) (contact.Contact, bool) {
	c, ok := d.byCode[key]
	return c, ok
}

// List returns every contact in insertion order. An empty directory yields
// an empty, non-nil slice.
func (d *Directory) List() []contact.Contact {
	out := make([]contact.Contact, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, d.byCode[k])
	}
	return out
}

// Len reports how many contacts are stored.
func (d *Directory) Len() int {
	return len(d.order)
}

// Rename replaces the name and surnames of the contact under oldKey and
// re-indexes it under the recomputed code. The contact keeps its position in
// List. If the new code belongs to another contact, nothing changes and
// ErrDuplicate is returned.
func (d *Directory) Rename(oldKey, name, surnames string) (contact.Contact, error) {
	old, ok := d.byCode[oldKey]
	if !ok {
		return contact.Contact{}, fmt.Errorf("%w: %q", ErrNotFound, oldKey)
	}

	renamed := old.Renamed(name, surnames)
	newKey := renamed.Code()
	if newKey != oldKey {
		if _, taken := d.byCode[newKey]; taken {
			d.logger.Debug("rename rejected", zap.String("code", oldKey), zap.String("new_code", newKey))
			return contact.Contact{}, fmt.Errorf("%w: %q", ErrDuplicate, newKey)
		}
		delete(d.byCode, oldKey)
		d.order[slices.Index(d.order, oldKey)] = newKey
	}
	d.byCode[newKey] = renamed
	d.logger.Debug("contact renamed", zap.String("code", oldKey), zap.String("new_code", newKey))
	return renamed, nil
}

// SetPhone replaces the phone number of the contact under key.
func (d *Directory) SetPhone(key, phone string) (contact.Contact, error) {
	c, ok := d.byCode[key]
	if !ok {
		return contact.Contact{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	c = c.WithPhone(phone)
	d.byCode[key] = c
	d.logger.Debug("phone updated", zap.String("code", key))
	return c, nil
}
