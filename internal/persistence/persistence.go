package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/steer2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketDriveState = "driveState"

	// DefaultVehicleId is the key used for the drive state of the configured vehicle
	DefaultVehicleId = "vehicle"
)

// DriveState is the operator controlled state which survives a restart
type DriveState struct {
	Mode     string    `json:"mode"`
	TrimStep int       `json:"trimStep"`
	Speed    float64   `json:"speed"`
	SavedAt  time.Time `json:"savedAt"`
}

type Persistence interface {
	Init() error

	LoadDriveState(vehicleId string) (DriveState, error)
	SaveDriveState(vehicleId string, state DriveState) (err error)
	DeleteDriveState(vehicleId string) (err error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveDriveState saves the given drive state to persistence
func (p persistence) SaveDriveState(vehicleId string, state DriveState) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketDriveState))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(vehicleId), data)
	})
}

// LoadDriveState loads the drive state from persistence, returns os.ErrNotExist if there is none
func (p persistence) LoadDriveState(vehicleId string) (DriveState, error) {
	db, err := p.openPersistence()
	if err != nil {
		return DriveState{}, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var state DriveState
	found := false
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketDriveState))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(vehicleId))
		if v == nil {
			return os.ErrNotExist
		}

		err := json.Unmarshal(v, &state)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved drive state for %s: %v", vehicleId, err)
			err := b.Delete([]byte(vehicleId))
			if err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", vehicleId, err)
			}
			return nil
		}
		found = true
		return nil
	})
	if err == nil && !found {
		err = os.ErrNotExist
	}

	return state, err
}

// DeleteDriveState removes the drive state of the given vehicle
func (p persistence) DeleteDriveState(vehicleId string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketDriveState))
		if b != nil {
			return b.Delete([]byte(vehicleId))
		}
		return nil
	})
}
