package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kliniki/clinic-api/internal/domain/entity"
)

// dryRunDB builds statements against the Postgres dialect without a
// connection.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=test dbname=test"}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db
}

// The booking path calls FindOrCreate inside an open transaction. A raw
// unique violation on Postgres aborts that transaction and makes the
// recovery read fail, so the duplicate has to be swallowed in the insert
// statement itself and never surface as an error.
func TestPatientInsert_DuplicateSSNHandledInStatement(t *testing.T) {
	db := dryRunDB(t)

	stmt := db.Clauses(patientInsertConflict()).Create(&entity.Patient{
		SocialSecurityNumber: "12345678901",
		FirstName:            "Anna",
		LastName:             "Papadopoulou",
	}).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, `ON CONFLICT ("social_security_number") DO NOTHING`)
}

func TestPatientInsertConflict_TargetsSSNColumn(t *testing.T) {
	c := patientInsertConflict()

	assert.True(t, c.DoNothing)
	require.Len(t, c.Columns, 1)
	assert.Equal(t, "social_security_number", c.Columns[0].Name)
}
