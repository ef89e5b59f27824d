// Package filestore persists the portal credential as a small JSON document on disk.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	domainauth "github.com/target/mdbook-portal/internal/domain/auth"
	"github.com/target/mdbook-portal/internal/ports"
)

var _ ports.CredentialBackend = (*CredentialStore)(nil)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// record is the on-disk shape; the keys are the fixed storage names.
type record struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// CredentialStore keeps the credential in a single file. Writes go to a
// temporary file in the same directory and are renamed into place, so a
// reader sees either the old triple or the new one.
type CredentialStore struct {
	path string
}

// NewCredentialStore creates a file-backed store at path.
func NewCredentialStore(path string) (*CredentialStore, error) {
	if path == "" {
		return nil, errors.New("credential file path is required")
	}
	return &CredentialStore{path: filepath.Clean(path)}, nil
}

// DefaultPath returns the per-user credential location under the user config dir.
func DefaultPath(profile string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	if profile == "" {
		profile = "default"
	}
	return filepath.Join(dir, "bookportal", profile+".json"), nil
}

// Path returns the file location.
func (s *CredentialStore) Path() string { return s.path }

func (s *CredentialStore) Load(_ context.Context) (domainauth.Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domainauth.Credential{}, nil
		}
		return domainauth.Credential{}, fmt.Errorf("read credential file: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return domainauth.Credential{}, fmt.Errorf("decode credential file: %w", err)
	}
	return domainauth.Credential{
		Token: rec.Token,
		Role:  domainauth.ParseRole(rec.Role),
		Email: rec.Email,
	}, nil
}

func (s *CredentialStore) Save(_ context.Context, cred domainauth.Credential) error {
	data, err := json.Marshal(record{Token: cred.Token, Role: string(cred.Role), Email: cred.Email})
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credential-*")
	if err != nil {
		return fmt.Errorf("create temp credential file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func(cause error) error {
		if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			return errors.Join(cause, fmt.Errorf("remove temp credential file: %w", rmErr))
		}
		return cause
	}

	if err := tmp.Chmod(filePerm); err != nil {
		return cleanup(errors.Join(fmt.Errorf("chmod temp credential file: %w", err), tmp.Close()))
	}
	if _, err := tmp.Write(data); err != nil {
		return cleanup(errors.Join(fmt.Errorf("write temp credential file: %w", err), tmp.Close()))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(errors.Join(fmt.Errorf("sync temp credential file: %w", err), tmp.Close()))
	}
	if err := tmp.Close(); err != nil {
		return cleanup(fmt.Errorf("close temp credential file: %w", err))
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return cleanup(fmt.Errorf("replace credential file: %w", err))
	}
	return nil
}

func (s *CredentialStore) Delete(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}
