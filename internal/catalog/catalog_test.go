package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestInsertAndList(t *testing.T) {
	c := openTestCatalog(t)

	id, err := c.Insert(Record{
		Directory:    "/data/exp1",
		Frames:       10,
		Rows:         63,
		Cols:         63,
		DeltaT:       2000,
		LengthUnit:   "mm",
		VelocityUnit: "m/s",
		MeanSpeed:    1.25,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	records, err := c.List(10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "/data/exp1", rec.Directory)
	assert.Equal(t, 10, rec.Frames)
	assert.Equal(t, 63, rec.Rows)
	assert.Equal(t, 63, rec.Cols)
	assert.Equal(t, 2000.0, rec.DeltaT)
	assert.Equal(t, "m/s", rec.VelocityUnit)
	assert.Equal(t, 1.25, rec.MeanSpeed)
	assert.False(t, rec.LoadedAt.IsZero())
}

func TestInsertKeepsSuppliedID(t *testing.T) {
	c := openTestCatalog(t)

	id, err := c.Insert(Record{ID: "fixed-id", Directory: "/data/exp2"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)
}

func TestInsertDuplicateIDFails(t *testing.T) {
	c := openTestCatalog(t)

	_, err := c.Insert(Record{ID: "dup", Directory: "/a"})
	require.NoError(t, err)
	_, err = c.Insert(Record{ID: "dup", Directory: "/b"})
	assert.Error(t, err)
}

func TestListLimit(t *testing.T) {
	c := openTestCatalog(t)

	for i := 0; i < 5; i++ {
		_, err := c.Insert(Record{Directory: "/data"})
		require.NoError(t, err)
	}

	records, err := c.List(3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestRecordString(t *testing.T) {
	rec := Record{Directory: "/d", Frames: 3, Rows: 2, Cols: 4, DeltaT: 100, MeanSpeed: 0.5, VelocityUnit: "m/s"}
	assert.Contains(t, rec.String(), "3 frames of 2x4")
}
