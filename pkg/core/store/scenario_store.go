package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"mortgage_engine/pkg/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScenarioStore persists saved calculator scenarios.
// Hybrid layout: DB (Primary) + File System (Fallback/Local).
type ScenarioStore struct {
	pool    *pgxpool.Pool
	fileDir string
}

// NewScenarioStore creates a scenario store. If pool is nil it falls back to
// a file directory; an empty dir defaults to .cache/scenarios.
func NewScenarioStore(pool *pgxpool.Pool, dir string) *ScenarioStore {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "scenarios")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] Check ScenarioStore dir: %v\n", err)
		}
	}
	return &ScenarioStore{pool: pool, fileDir: dir}
}

// validID reports whether id is a uuid. IDs are only ever assigned by Save,
// so anything else is rejected before it can reach a file path.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Save upserts a scenario. A blank ID gets a fresh uuid; the assigned ID is
// returned so callers can hand it back to the client.
func (s *ScenarioStore) Save(ctx context.Context, scenario *models.Scenario) (string, error) {
	if scenario.ID == "" {
		scenario.ID = uuid.NewString()
		scenario.CreatedAt = time.Now()
	} else if !validID(scenario.ID) {
		return "", fmt.Errorf("invalid scenario id: %q", scenario.ID)
	}
	scenario.UpdatedAt = time.Now()

	inputsJSON, err := json.Marshal(scenario.Inputs)
	if err != nil {
		return "", fmt.Errorf("failed to marshal scenario inputs: %w", err)
	}

	// 1. Save to DB
	if s.pool != nil {
		query := `
			INSERT INTO scenarios (id, label, inputs, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id)
			DO UPDATE SET
				label = EXCLUDED.label,
				inputs = EXCLUDED.inputs,
				updated_at = EXCLUDED.updated_at
		`
		_, err = s.pool.Exec(ctx, query,
			scenario.ID, scenario.Label, inputsJSON, scenario.CreatedAt, scenario.UpdatedAt,
		)
		if err != nil {
			return "", fmt.Errorf("failed to save scenario to db: %w", err)
		}
		return scenario.ID, nil
	}

	// 2. File fallback
	if s.fileDir != "" {
		fileBytes, _ := json.MarshalIndent(scenario, "", "  ")
		if err := os.WriteFile(s.scenarioPath(scenario.ID), fileBytes, 0644); err != nil {
			return "", fmt.Errorf("failed to save scenario to file: %w", err)
		}
	}

	return scenario.ID, nil
}

// Get retrieves one scenario by ID. Missing scenarios return (nil, nil).
func (s *ScenarioStore) Get(ctx context.Context, id string) (*models.Scenario, error) {
	if !validID(id) {
		return nil, nil
	}

	if s.pool != nil {
		query := `SELECT id, label, inputs, created_at, updated_at FROM scenarios WHERE id = $1 LIMIT 1`

		var scenario models.Scenario
		var inputsJSON []byte
		err := s.pool.QueryRow(ctx, query, id).Scan(
			&scenario.ID, &scenario.Label, &inputsJSON, &scenario.CreatedAt, &scenario.UpdatedAt,
		)
		if err != nil {
			return nil, nil // Miss
		}
		if err := json.Unmarshal(inputsJSON, &scenario.Inputs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored inputs: %w", err)
		}
		return &scenario, nil
	}

	if s.fileDir != "" {
		return s.loadFromFile(s.scenarioPath(id))
	}

	return nil, nil
}

// List returns all saved scenarios, newest first.
func (s *ScenarioStore) List(ctx context.Context) ([]*models.Scenario, error) {
	if s.pool != nil {
		query := `SELECT id, label, inputs, created_at, updated_at FROM scenarios ORDER BY updated_at DESC`

		rows, err := s.pool.Query(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to list scenarios: %w", err)
		}
		defer rows.Close()

		var scenarios []*models.Scenario
		for rows.Next() {
			var scenario models.Scenario
			var inputsJSON []byte
			if err := rows.Scan(&scenario.ID, &scenario.Label, &inputsJSON, &scenario.CreatedAt, &scenario.UpdatedAt); err != nil {
				continue
			}
			if err := json.Unmarshal(inputsJSON, &scenario.Inputs); err != nil {
				continue
			}
			scenarios = append(scenarios, &scenario)
		}
		return scenarios, nil
	}

	// File fallback: scan the directory
	if s.fileDir != "" {
		return s.scanFiles()
	}

	return nil, nil
}

// Delete removes a scenario. Deleting a missing ID is not an error.
func (s *ScenarioStore) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}

	if s.pool != nil {
		_, err := s.pool.Exec(ctx, `DELETE FROM scenarios WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete scenario: %w", err)
		}
		return nil
	}

	if s.fileDir != "" {
		if err := os.Remove(s.scenarioPath(id)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// Internal File Helpers

func (s *ScenarioStore) scenarioPath(id string) string {
	return filepath.Join(s.fileDir, id+".json")
}

func (s *ScenarioStore) loadFromFile(path string) (*models.Scenario, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, nil // Not found
	}
	var scenario models.Scenario
	if err := json.Unmarshal(bytes, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *ScenarioStore) scanFiles() ([]*models.Scenario, error) {
	entries, err := os.ReadDir(s.fileDir)
	if err != nil {
		return nil, nil
	}

	var scenarios []*models.Scenario
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			continue
		}
		scenario, err := s.loadFromFile(filepath.Join(s.fileDir, e.Name()))
		if err != nil || scenario == nil {
			continue
		}
		scenarios = append(scenarios, scenario)
	}

	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].UpdatedAt.After(scenarios[j].UpdatedAt)
	})

	return scenarios, nil
}
