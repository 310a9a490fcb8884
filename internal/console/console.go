// Package console implements the line-based phonebook session used when no
// terminal UI is available.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/smileynet/phonebook/internal/code"
	"github.com/smileynet/phonebook/internal/contact"
	"github.com/smileynet/phonebook/internal/directory"
)

// Main menu options.
const (
	optAdd = iota + 1
	optList
	optSelect
	optRename
	optDelete
	optExit
)

// maxAnswerBytes bounds a single answer. Longer lines are discarded and the
// prompt is repeated.
const maxAnswerBytes = 64 << 10

var errAnswerTooLong = errors.New("console: answer too long")

// Contact menu options.
const (
	actCallMine = iota + 1
	actCallOther
	actDetails
	actPhone
	actBack
)

// Session drives the menu loop over an injected input and output.
type Session struct {
	dir    *directory.Directory
	in     *bufio.Reader
	out    io.Writer
	logger *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for session events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Session reading answers from in and writing to out.
func New(dir *directory.Directory, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		dir:    dir,
		in:     bufio.NewReader(in),
		out:    out,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the main menu until the user exits or input ends.
// End of input is a normal exit. A cancelled ctx stops the loop between prompts.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("session started", zap.Int("contacts", s.dir.Len()))
	defer s.logger.Info("session ended", zap.Int("contacts", s.dir.Len()))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.showMenu()
		choice, err := s.readInt("Select an option: ")
		if err != nil {
			return s.finish(err)
		}

		switch choice {
		case optAdd:
			err = s.addContact()
		case optList:
			s.listContacts()
		case optSelect:
			err = s.selectContact(ctx)
		case optRename:
			err = s.renameContact()
		case optDelete:
			err = s.deleteContact()
		case optExit:
			s.println("Leaving the phonebook. Goodbye!")
			return nil
		default:
			s.println("Invalid option. Please choose a valid option.")
		}
		if err != nil {
			return s.finish(err)
		}
	}
}

// finish turns end of input into a clean exit.
func (s *Session) finish(err error) error {
	if errors.Is(err, io.EOF) {
		s.println("")
		s.println("Input closed. Goodbye!")
		return nil
	}
	return err
}

func (s *Session) showMenu() {
	s.println("")
	s.println("--- Phonebook ---")
	s.println("1. Add a contact")
	s.println("2. Show all contacts")
	s.println("3. Select a contact and perform actions")
	s.println("4. Rename a contact")
	s.println("5. Delete a contact")
	s.println("6. Exit")
}

func (s *Session) addContact() error {
	s.println("")
	s.println("--- Add New Contact ---")
	name, err := s.readLine("Enter the name: ")
	if err != nil {
		return err
	}
	surnames, err := s.readLine("Enter the surnames: ")
	if err != nil {
		return err
	}
	phone, err := s.readLine("Enter the phone number: ")
	if err != nil {
		return err
	}

	c := contact.New(name, surnames, phone)
	if err := s.dir.Add(c); err != nil {
		if errors.Is(err, directory.ErrDuplicate) {
			s.printf("A contact with code %s already exists.\n", c.Code())
			s.println("The contact was not added.")
			return nil
		}
		return err
	}
	s.printf("Contact added with code: %s\n", c.Code())
	return nil
}

func (s *Session) listContacts() {
	s.println("")
	s.println("--- Contact List ---")
	contacts := s.dir.List()
	if len(contacts) == 0 {
		s.println("The phonebook is empty.")
		return
	}
	for _, c := range contacts {
		s.println(c.String())
	}
}

// lookup prompts for a code and resolves it. Typed codes are normalized so
// "GARCÍA" style input still matches; ok is false when nothing matched.
func (s *Session) lookup(prompt string) (contact.Contact, string, bool, error) {
	raw, err := s.readLine(prompt)
	if err != nil {
		return contact.Contact{}, "", false, err
	}
	key := code.Normalize(raw)
	c, ok := s.dir.Find(key)
	if !ok {
		s.printf("No contact found with code: %s\n", key)
	}
	return c, key, ok, nil
}

func (s *Session) selectContact(ctx context.Context) error {
	s.println("")
	s.println("--- Select Contact ---")
	c, _, ok, err := s.lookup("Enter the contact code: ")
	if err != nil || !ok {
		return err
	}
	return s.contactMenu(ctx, c)
}

func (s *Session) contactMenu(ctx context.Context, c contact.Contact) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.println("")
		s.printf("--- Actions for %s ---\n", c.FullName())
		s.println("1. Call my number")
		s.println("2. Call another number")
		s.println("3. Show contact details")
		s.println("4. Change phone number")
		s.println("5. Back to main menu")
		choice, err := s.readInt("Select an option: ")
		if err != nil {
			return err
		}

		switch choice {
		case actCallMine:
			s.println(c.CallMyNumber())
		case actCallOther:
			number, err := s.readLine("Enter the number to call: ")
			if err != nil {
				return err
			}
			s.println(c.CallOtherNumber(number))
		case actDetails:
			s.println(c.Details())
		case actPhone:
			phone, err := s.readLine("Enter the new phone number: ")
			if err != nil {
				return err
			}
			updated, err := s.dir.SetPhone(c.Code(), phone)
			if err != nil {
				// The contact was removed underneath us; nothing left to act on.
				s.printf("No contact found with code: %s\n", c.Code())
				return nil
			}
			c = updated
			s.printf("Phone number updated to %s.\n", c.Phone())
		case actBack:
			s.println("Returning to the main menu.")
			return nil
		default:
			s.println("Invalid option. Please choose a valid option.")
		}
	}
}

func (s *Session) renameContact() error {
	s.println("")
	s.println("--- Rename Contact ---")
	c, key, ok, err := s.lookup("Enter the contact code to rename: ")
	if err != nil || !ok {
		return err
	}

	name, err := s.readLine(fmt.Sprintf("Enter the new name [%s]: ", c.Name()))
	if err != nil {
		return err
	}
	if name == "" {
		name = c.Name()
	}
	surnames, err := s.readLine(fmt.Sprintf("Enter the new surnames [%s]: ", c.Surnames()))
	if err != nil {
		return err
	}
	if surnames == "" {
		surnames = c.Surnames()
	}

	renamed, err := s.dir.Rename(key, name, surnames)
	switch {
	case errors.Is(err, directory.ErrDuplicate):
		s.printf("A contact with code %s already exists.\n", code.Generate(name, surnames))
		s.println("The contact was not renamed.")
		return nil
	case err != nil:
		return err
	}
	s.printf("Contact renamed: %s -> %s\n", key, renamed.Code())
	return nil
}

func (s *Session) deleteContact() error {
	s.println("")
	s.println("--- Delete Contact ---")
	raw, err := s.readLine("Enter the contact code to delete: ")
	if err != nil {
		return err
	}
	key := code.Normalize(raw)
	if err := s.dir.Remove(key); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			s.printf("No contact found with code: %s\n", key)
			return nil
		}
		return err
	}
	s.printf("Contact with code %s was deleted.\n", key)
	return nil
}

// readLine prompts and returns the trimmed answer, or io.EOF once input ends.
// Answers over maxAnswerBytes are rejected and the prompt is shown again.
func (s *Session) readLine(prompt string) (string, error) {
	for {
		s.printf("%s", prompt)
		line, err := s.nextLine()
		switch {
		case errors.Is(err, errAnswerTooLong):
			s.logger.Debug("rejected long input", zap.Int("limit", maxAnswerBytes))
			s.println("Input too long. Please try again.")
			continue
		case errors.Is(err, io.EOF):
			return "", io.EOF
		case err != nil:
			return "", fmt.Errorf("console: reading input: %w", err)
		}
		return strings.TrimSpace(line), nil
	}
}

// nextLine reads one line without its terminator. An overlong line is
// consumed in full before errAnswerTooLong is returned, so the next read
// starts on the following line.
func (s *Session) nextLine() (string, error) {
	var (
		buf     []byte
		tooLong bool
		read    bool
	)
	for {
		chunk, more, err := s.in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && read {
				break
			}
			return "", err
		}
		read = true
		if !tooLong && len(buf)+len(chunk) <= maxAnswerBytes {
			buf = append(buf, chunk...)
		} else {
			tooLong, buf = true, nil
		}
		if !more {
			break
		}
	}
	if tooLong {
		return "", errAnswerTooLong
	}
	return string(buf), nil
}

// readInt prompts until the answer parses as an integer.
func (s *Session) readInt(prompt string) (int, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		s.logger.Debug("rejected menu input", zap.String("input", line))
		s.println("Invalid input. Please enter a whole number.")
	}
}

func (s *Session) println(line string) {
	_, _ = fmt.Fprintln(s.out, line)
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}
