package configstore

import (
	"context"
	"os"
	"path/filepath"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/mbrandall/survivor-pool/internal/domain/catalog"
	"github.com/mbrandall/survivor-pool/internal/domain/pool"
)

const (
	teamsFile    = "teams.json"
	poolFile     = "pool.json"
	settingsFile = "settings.json"
	catalogFile  = "players.csv"
)

// FileStore persists the flat configuration files under a data directory.
// Files are read and written wholesale; there are no partial updates.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

type teamsDocument struct {
	Teams []string `json:"teams"`
}

func (s *FileStore) LoadTeams(_ context.Context) ([]string, bool, error) {
	raw, exists, err := s.readFile(teamsFile)
	if err != nil || !exists {
		return nil, exists, err
	}

	var doc teamsDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return nil, false, crerr.Wrapf(err, "decode %s", teamsFile)
	}

	return doc.Teams, true, nil
}

func (s *FileStore) SaveTeams(_ context.Context, teams []string) error {
	return s.writeJSON(teamsFile, teamsDocument{Teams: teams})
}

func (s *FileStore) LoadPool(_ context.Context) (pool.Pool, bool, error) {
	raw, exists, err := s.readFile(poolFile)
	if err != nil || !exists {
		return nil, exists, err
	}

	var p pool.Pool
	if err := sonic.Unmarshal(raw, &p); err != nil {
		return nil, false, crerr.Wrapf(err, "decode %s", poolFile)
	}

	return p, true, nil
}

func (s *FileStore) SavePool(_ context.Context, p pool.Pool) error {
	return s.writeJSON(poolFile, p)
}

func (s *FileStore) LoadSettings(_ context.Context) (pool.Settings, error) {
	raw, exists, err := s.readFile(settingsFile)
	if err != nil {
		return pool.Settings{}, err
	}
	if !exists {
		// Entries are open until an admin closes them.
		return pool.Settings{EntriesOpen: true}, nil
	}

	var settings pool.Settings
	if err := sonic.Unmarshal(raw, &settings); err != nil {
		return pool.Settings{}, crerr.Wrapf(err, "decode %s", settingsFile)
	}

	return settings, nil
}

func (s *FileStore) SaveSettings(_ context.Context, settings pool.Settings) error {
	return s.writeJSON(settingsFile, settings)
}

func (s *FileStore) WritePlayers(_ context.Context, players []catalog.Player) error {
	path := filepath.Join(s.dir, catalogFile)
	if err := os.WriteFile(path, []byte(catalog.Encode(players)), 0o644); err != nil {
		return crerr.Wrapf(err, "write %s", catalogFile)
	}
	return nil
}

func (s *FileStore) ReadPlayers(_ context.Context) ([]catalog.Player, bool, error) {
	raw, exists, err := s.readFile(catalogFile)
	if err != nil || !exists {
		return nil, exists, err
	}

	players, err := catalog.Decode(string(raw))
	if err != nil {
		return nil, false, crerr.Wrapf(err, "decode %s", catalogFile)
	}

	return players, true, nil
}

func (s *FileStore) readFile(name string) ([]byte, bool, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, crerr.Wrapf(err, "read %s", name)
	}
	return raw, true, nil
}

func (s *FileStore) writeJSON(name string, v any) error {
	raw, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return crerr.Wrapf(err, "encode %s", name)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return crerr.Wrapf(err, "write %s", name)
	}
	return nil
}
