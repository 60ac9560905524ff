package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONスナップショットストア。
// コレクション1つ=ファイル1つ。Loadは全件読み、Saveは全件で置き換える。
// マージはしない（last write wins）。複数プロセスの同時書き込みは想定外。
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// ファイルが無いときはvをゼロ値のまま返す（空コレクション扱い）
func (s *Store) Load(name string, v any) error {
	b, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("load %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *Store) Save(name string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), b, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}
