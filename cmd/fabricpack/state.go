package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fabricpack/fabricpack/internal/model"
	"github.com/fabricpack/fabricpack/internal/session"
)

// Each session's state lives as two files under stateDir, named by the
// session id: a snapshot written through session.ExportSnapshot/
// ImportSnapshot, and a sidecar holding whatever NextPackingOptions last
// offered so a later "pack"/"render" call can commit one by index without
// resubmitting the full option.

func snapshotPath(id string) string {
	return filepath.Join(stateDir, id+".snapshot.json")
}

func optionsPath(id string) string {
	return filepath.Join(stateDir, id+".options.json")
}

func saveOptions(id string, opts []model.PackingOption) error {
	out, err := json.MarshalIndent(opts, "", "  ")
	if err != nil {
		return fmt.Errorf("fabricpack: marshal pending options: %w", err)
	}
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("fabricpack: create state directory: %w", err)
	}
	return os.WriteFile(optionsPath(id), out, 0644)
}

func loadOptions(id string) ([]model.PackingOption, error) {
	raw, err := os.ReadFile(optionsPath(id))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("fabricpack: no pending options for session %q; run next-options first", id)
	}
	if err != nil {
		return nil, fmt.Errorf("fabricpack: read pending options: %w", err)
	}
	var opts []model.PackingOption
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, fmt.Errorf("fabricpack: parse pending options: %w", err)
	}
	return opts, nil
}

// resumeSession reloads a session's snapshot from disk and replays it into
// a live, resumable *session.Session via session.Rebuild.
func resumeSession(id string) (*session.Session, error) {
	data, err := session.ImportSnapshot(snapshotPath(id))
	if err != nil {
		return nil, fmt.Errorf("fabricpack: load session %q: %w", id, err)
	}
	s, err := session.Rebuild(data)
	if err != nil {
		return nil, fmt.Errorf("fabricpack: rebuild session %q: %w", id, err)
	}
	return s, nil
}
