// Package identity answers "who is using lq right now".
package identity

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider yields the current user id, or ok=false when nobody is signed in.
type Provider interface {
	CurrentUserID(ctx context.Context) (id string, ok bool, err error)
}

var userIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._@-]{0,63}$`)

// ValidateUserID rejects ids that would be awkward as storage keys.
func ValidateUserID(id string) error {
	if !userIDPattern.MatchString(id) {
		return fmt.Errorf("invalid user id %q: use letters, digits and . _ @ - (max 64)", id)
	}
	return nil
}

type session struct {
	User     string    `yaml:"user"`
	SignedIn time.Time `yaml:"signed_in_at"`
}

// FileProvider keeps the signed-in user in a small YAML session file.
type FileProvider struct {
	Path string
	Now  func() time.Time
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path, Now: time.Now}
}

func (p *FileProvider) CurrentUserID(ctx context.Context) (string, bool, error) {
	data, err := os.ReadFile(p.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read session: %w", err)
	}
	var s session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return "", false, fmt.Errorf("parse session %s: %w", p.Path, err)
	}
	if s.User == "" {
		return "", false, nil
	}
	return s.User, true, nil
}

// Login records id as the signed-in user.
func (p *FileProvider) Login(id string) error {
	id = strings.TrimSpace(id)
	if err := ValidateUserID(id); err != nil {
		return err
	}
	data, err := yaml.Marshal(session{User: id, SignedIn: p.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.Path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(p.Path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Logout forgets the signed-in user. Logging out twice is fine.
func (p *FileProvider) Logout() error {
	err := os.Remove(p.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Static always returns the same id; an empty id means signed out.
type Static string

func (s Static) CurrentUserID(context.Context) (string, bool, error) {
	return string(s), s != "", nil
}

// Chain asks each provider in turn and returns the first id found. An error
// from one provider is returned only if no later provider has an id.
type Chain []Provider

func (c Chain) CurrentUserID(ctx context.Context) (string, bool, error) {
	var firstErr error
	for _, p := range c {
		id, ok, err := p.CurrentUserID(ctx)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok {
			return id, true, nil
		}
	}
	return "", false, firstErr
}
