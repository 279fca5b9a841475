package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns_SQLite(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, db.Exec("CREATE TABLE storage_entries (item_key VARCHAR(191) PRIMARY KEY, item_value TEXT NOT NULL, updated_at DATETIME)").Error)

	columns, err := GetTableColumns(db, "storage_entries")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	byField := make(map[string]ColumnInfo, len(columns))
	for _, col := range columns {
		byField[col.Field] = col
	}
	assert.Equal(t, "PRI", byField["item_key"].Key)
	assert.Equal(t, "varchar(191)", byField["item_key"].Type)
	assert.Equal(t, "text", byField["item_value"].Type)

	t.Run("Missing table", func(t *testing.T) {
		cols, err := GetTableColumns(db, "wallets")
		assert.NoError(t, err)
		assert.Empty(t, cols)
	})
}

func TestHasColumn(t *testing.T) {
	columns := []ColumnInfo{
		{Field: "item_key", Type: "varchar(191)"},
		{Field: "item_value", Type: "longtext"},
	}

	assert.True(t, HasColumn(columns, "item_key", "varchar"))
	assert.True(t, HasColumn(columns, "item_value", ""))
	assert.False(t, HasColumn(columns, "item_value", "text"), "longtext is not a text prefix match")
	assert.False(t, HasColumn(columns, "updated_at", ""))
}
