package store

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/3ddruckrorbas/Druck/internal/fstore"
	"github.com/3ddruckrorbas/Druck/internal/model"
)

const filamentsDoc = "filaments"

// FilamentStore manages the filament inventory on top of the file store.
type FilamentStore struct {
	files *fstore.Store
}

// NewFilamentStore creates a filament store backed by files. On first
// run the inventory document is seeded with the default catalogue.
func NewFilamentStore(files *fstore.Store) *FilamentStore {
	s := &FilamentStore{files: files}
	if !files.Exists(filamentsDoc) {
		seeds := seedFilaments()
		if err := files.Save(filamentsDoc, seeds); err != nil {
			log.Printf("seeding filament inventory: %v", err)
		} else {
			log.Printf("seeded filament inventory with %d defaults", len(seeds))
		}
	}
	return s
}

// seedFilaments is the default inventory installed on first run.
func seedFilaments() []model.Filament {
	entries := []struct {
		name, color, hex, material string
	}{
		{"Galaxy Black", "Black", "#1b1b1d", "PLA"},
		{"Signal White", "White", "#f4f4f4", "PLA"},
		{"Fire Red", "Red", "#d32f2f", "PLA"},
		{"Ocean Blue", "Blue", "#1565c0", "PLA"},
		{"Forest Green", "Green", "#2e7d32", "PLA"},
		{"Sunrise Orange", "Orange", "#ef6c00", "PLA"},
		{"Lemon Yellow", "Yellow", "#fdd835", "PLA"},
		{"Crystal Clear", "Transparent", "#e0f7fa", "PETG"},
		{"Carbon Grey", "Grey", "#546e7a", "PETG"},
		{"Jet Black", "Black", "#121212", "ABS"},
		{"Flex Black", "Black", "#212121", "TPU"},
	}

	filaments := make([]model.Filament, 0, len(entries))
	for _, e := range entries {
		filaments = append(filaments, model.Filament{
			ID:       uuid.NewString(),
			Name:     e.name,
			Color:    e.color,
			ColorHex: e.hex,
			Material: e.material,
			InStock:  true,
		})
	}
	return filaments
}

func (s *FilamentStore) loadAll() ([]model.Filament, error) {
	var filaments []model.Filament
	if err := s.files.Load(filamentsDoc, &filaments, seedFilaments()); err != nil {
		return nil, fmt.Errorf("loading filaments: %w", err)
	}
	return filaments, nil
}

// List returns the full inventory.
func (s *FilamentStore) List() ([]model.Filament, error) {
	return s.loadAll()
}

// Create appends a new filament built from the client payload and
// returns the full inventory. The id is server-assigned and inStock
// defaults to true unless the payload says otherwise.
func (s *FilamentStore) Create(payload json.RawMessage) ([]model.Filament, error) {
	filaments, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	filament := model.Filament{InStock: true}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &filament); err != nil {
			return nil, fmt.Errorf("decoding filament payload: %w", err)
		}
	}
	filament.ID = uuid.NewString()

	filaments = append(filaments, filament)
	if err := s.files.Save(filamentsDoc, filaments); err != nil {
		return nil, err
	}
	return filaments, nil
}

// Update merges the client payload into the filament with the given id
// and returns the full inventory. Returns ErrFilamentNotFound for
// unknown ids.
func (s *FilamentStore) Update(id string, payload json.RawMessage) ([]model.Filament, error) {
	filaments, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	found := false
	for i := range filaments {
		if filaments[i].ID != id {
			continue
		}
		if err := json.Unmarshal(payload, &filaments[i]); err != nil {
			return nil, fmt.Errorf("decoding filament update: %w", err)
		}
		filaments[i].ID = id
		found = true
		break
	}
	if !found {
		return nil, ErrFilamentNotFound
	}

	if err := s.files.Save(filamentsDoc, filaments); err != nil {
		return nil, err
	}
	return filaments, nil
}

// Delete removes the filament with the given id and returns the
// remaining inventory. Returns ErrFilamentNotFound for unknown ids.
func (s *FilamentStore) Delete(id string) ([]model.Filament, error) {
	filaments, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	remaining := filaments[:0:0]
	for _, f := range filaments {
		if f.ID != id {
			remaining = append(remaining, f)
		}
	}
	if len(remaining) == len(filaments) {
		return nil, ErrFilamentNotFound
	}

	if err := s.files.Save(filamentsDoc, remaining); err != nil {
		return nil, err
	}
	return remaining, nil
}
