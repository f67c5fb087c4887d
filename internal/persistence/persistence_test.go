package persistence

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func newTestPersistence(t *testing.T) (Persistence, string) {
	dbPath := filepath.Join(t.TempDir(), "db", "test.db")
	p := NewPersistence(dbPath)
	require.NoError(t, p.Init())
	return p, dbPath
}

func TestPersistence_Init_CreatesParentDirectory(t *testing.T) {
	// GIVEN
	_, dbPath := newTestPersistence(t)

	// THEN
	info, err := os.Stat(filepath.Dir(dbPath))
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPersistence_SaveAndLoadDriveState(t *testing.T) {
	// GIVEN
	p, _ := newTestPersistence(t)
	expected := DriveState{
		Mode:     "manual",
		TrimStep: -3,
		Speed:    55,
		SavedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	// WHEN
	err := p.SaveDriveState(DefaultVehicleId, expected)
	require.NoError(t, err)
	state, err := p.LoadDriveState(DefaultVehicleId)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, expected, state)
}

func TestPersistence_LoadDriveState_Missing(t *testing.T) {
	// GIVEN
	p, _ := newTestPersistence(t)

	// WHEN
	_, err := p.LoadDriveState(DefaultVehicleId)

	// THEN
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPersistence_DeleteDriveState(t *testing.T) {
	// GIVEN
	p, _ := newTestPersistence(t)
	_ = p.SaveDriveState(DefaultVehicleId, DriveState{Mode: "auto", Speed: 50})

	// WHEN
	err := p.DeleteDriveState(DefaultVehicleId)
	assert.NoError(t, err)

	// THEN
	_, err = p.LoadDriveState(DefaultVehicleId)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPersistence_LoadDriveState_CorruptDataIsDeleted(t *testing.T) {
	// GIVEN
	p, dbPath := newTestPersistence(t)
	db, err := bolt.Open(dbPath, 0600, nil)
	require.NoError(t, err)
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketDriveState))
		if err != nil {
			return err
		}
		return b.Put([]byte(DefaultVehicleId), []byte("{not json"))
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// WHEN
	_, err = p.LoadDriveState(DefaultVehicleId)

	// THEN
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = p.LoadDriveState(DefaultVehicleId)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
