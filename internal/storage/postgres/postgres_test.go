package postgres

import (
	"io"
	"testing"

	"github.com/aerocats/massprops/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_Unreachable(t *testing.T) {
	_, err := New(config.DBConfig{
		Host:     "127.0.0.1",
		Port:     "1",
		Username: "postgres",
		Password: "postgres",
		Database: "massprops",
	}, zerolog.New(io.Discard))
	assert.ErrorContains(t, err, "failed to connect to postgres at 127.0.0.1:1")
}
