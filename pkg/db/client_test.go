package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmasterhq/stockmaster-backend/pkg/config"
)

func TestOpenDialectorSelectsEngine(t *testing.T) {
	cases := []struct {
		driver string
		want   string
	}{
		{driver: "", want: "postgres"},
		{driver: "postgres", want: "postgres"},
		{driver: "Postgres", want: "postgres"},
		{driver: "sqlite", want: "sqlite"},
	}

	for _, tc := range cases {
		dialector, err := openDialector(config.DBConfig{DSN: "dsn", Driver: tc.driver})
		require.NoError(t, err, "driver %q", tc.driver)
		assert.Equal(t, tc.want, dialector.Name(), "driver %q", tc.driver)
	}
}

func TestNewWithSqliteDriver(t *testing.T) {
	client, err := New(context.Background(), config.DBConfig{
		DSN:    "file:drivertest?mode=memory&cache=shared",
		Driver: "sqlite",
	}, nil)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "sqlite", client.DB().Dialector.Name())
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{DSN: "dsn", Driver: "oracle"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
