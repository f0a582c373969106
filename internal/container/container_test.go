package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bg-companion-api/config"
	"github.com/oksasatya/bg-companion-api/pkg/helpers"
)

func TestClose_ReverseOrder(t *testing.T) {
	var order []string
	c := &Container{}
	c.closers = append(c.closers,
		func() { order = append(order, "postgres") },
		func() { order = append(order, "redis") },
		func() { order = append(order, "rabbitmq") },
	)

	c.Close()
	c.Close()

	assert.Equal(t, []string{"rabbitmq", "redis", "postgres"}, order)
}

func TestNew_BadDSN(t *testing.T) {
	cfg := &config.Config{DatabaseURL: "postgres://user@localhost:notaport/db"}

	c, err := New(context.Background(), cfg, helpers.NewNopLogger())

	require.Error(t, err)
	assert.Nil(t, c)
}
