package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPool_Normalized(t *testing.T) {
	t.Run("zero values get defaults", func(t *testing.T) {
		p := Pool{}.normalized()

		assert.Equal(t, 20, p.MaxOpen)
		assert.Equal(t, 4, p.MaxIdle)
		assert.Equal(t, 30*time.Minute, p.MaxLifetime)
	})

	t.Run("explicit values are kept", func(t *testing.T) {
		p := Pool{MaxOpen: 50, MaxIdle: 10, MaxLifetime: time.Hour}.normalized()

		assert.Equal(t, 50, p.MaxOpen)
		assert.Equal(t, 10, p.MaxIdle)
		assert.Equal(t, time.Hour, p.MaxLifetime)
	})
}
