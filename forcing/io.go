package forcing

import (
	"encoding/gob"
	"fmt"
	"os"
)

// SaveGob writes the forcing to a gob file for fast reload.
func (frc *Forcing) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(frc); err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	return nil
}

// LoadGobForcing reads a gob-saved forcing.
func LoadGobForcing(fp string) (*Forcing, error) {
	var frc Forcing
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&frc); err != nil {
		return nil, err
	}
	return &frc, nil
}
