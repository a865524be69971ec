package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"

	"cyclenes/internal/cartridge"
)

// SaveManager persists battery-backed cartridge RAM next to other save data
type SaveManager struct {
	saveDirectory string
}

// NewSaveManager creates a save manager writing into dir
func NewSaveManager(dir string) *SaveManager {
	return &SaveManager{saveDirectory: dir}
}

// Path returns the save file used for romPath
func (sm *SaveManager) Path(romPath string) string {
	base := filepath.Base(romPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(sm.saveDirectory, base+".sav")
}

// Load restores PRG RAM for a battery-backed cartridge. A missing save file
// is not an error.
func (sm *SaveManager) Load(cart *cartridge.Cartridge, romPath string) error {
	if !cart.HasBattery() {
		return nil
	}
	path := sm.Path(romPath)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read save %s: %w", path, err)
	}
	if err := cart.LoadRAM(data); err != nil {
		return fmt.Errorf("load save %s: %w", path, err)
	}
	glog.Infof("[SAVE] restored %s", path)
	return nil
}

// Store writes PRG RAM of a battery-backed cartridge
func (sm *SaveManager) Store(cart *cartridge.Cartridge, romPath string) error {
	if !cart.HasBattery() {
		return nil
	}
	if err := os.MkdirAll(sm.saveDirectory, 0755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}
	path := sm.Path(romPath)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, cart.SaveRAM(), 0644); err != nil {
		return fmt.Errorf("write save %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write save %s: %w", path, err)
	}
	glog.Infof("[SAVE] wrote %s", path)
	return nil
}
