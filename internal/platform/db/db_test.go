package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	pg := &DB{Driver: DriverPostgres}
	assert.Equal(t,
		"SELECT * FROM routes WHERE id = $1 AND status IN ($2, $3)",
		pg.Rebind("SELECT * FROM routes WHERE id = ? AND status IN (?, ?)"),
	)

	lite := &DB{Driver: DriverSQLite}
	assert.Equal(t, "SELECT ? ", lite.Rebind("SELECT ? "))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", Placeholders(0))
	assert.Equal(t, "?", Placeholders(1))
	assert.Equal(t, "?, ?, ?", Placeholders(3))
}

func TestOpenSQLiteMemory(t *testing.T) {
	d, err := Open(DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer d.Close()

	var one int
	require.NoError(t, d.QueryRow("SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}

func TestOpenEmptyDSN(t *testing.T) {
	_, err := Open(DriverPostgres, " ")
	assert.Error(t, err)
}
