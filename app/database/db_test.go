package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/promptaat/promptaat/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestConfig(t *testing.T) {
	t.Run("Validate requires credentials", func(t *testing.T) {
		c := Config{Host: "localhost", User: "app", Database: "promptaat"}
		assert.ErrorIs(t, c.Validate(), models.ErrDatabaseCredentialNotConfigured)

		c.Password = "secret"
		assert.NoError(t, c.Validate())
	})

	t.Run("DSN", func(t *testing.T) {
		c := Config{Host: "db", Port: "5432", User: "app", Password: "secret", Database: "promptaat"}
		assert.Equal(t, "host=db user=app password=secret dbname=promptaat port=5432 sslmode=disable", c.DSN())

		c.UseSSL = true
		assert.Contains(t, c.DSN(), "sslmode=require")
	})

	t.Run("New rejects missing credentials", func(t *testing.T) {
		db, err := New(&Config{})
		assert.Nil(t, db)
		assert.ErrorIs(t, err, models.ErrDatabaseCredentialNotConfigured)
	})
}

func TestPinger(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer sqlDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)

	mock.ExpectPing()
	assert.NoError(t, Pinger{DB: gormDB}.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
