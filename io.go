package topmodel

import (
	"encoding/gob"
	"fmt"
	"os"
)

// SaveGob checkpoints the watershed state mid-run.
func (s *State) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" state.SaveGob %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf(" state.SaveGob %v", err)
	}
	return nil
}

// LoadGobState reloads a checkpointed state; resuming reproduces the
// uninterrupted run exactly.
func LoadGobState(fp string) (*State, error) {
	var s State
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
