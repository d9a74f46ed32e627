package assessment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	util "github.com/saulo-duarte/gradetrack-lambda/internal/utils"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=gradetrack dbname=gradetrack sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestMarkOverdueIgnoresExtraCreditGrades(t *testing.T) {
	db := dryRunDB(t)
	asOf := util.NewDate(2025, time.March, 10)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return markOverdue(tx, asOf, time.Date(2025, time.March, 10, 3, 0, 0, 0, time.UTC))
	})

	assert.Contains(t, sql, `UPDATE "assessments"`)
	assert.Contains(t, sql, "g.assessment_id = assessments.id AND g.is_extra_credit = false")
}
