package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_RequiresPool(t *testing.T) {
	db := NewPostgresDB(&DBConfig{})

	stats, err := db.Stats()
	assert.Nil(t, stats)
	require.Error(t, err)
	assert.Error(t, db.Ping(context.Background()))
}

func TestMonitorPoolHealth_StopsWithContext(t *testing.T) {
	db := NewPostgresDB(&DBConfig{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		db.MonitorPoolHealth(ctx, 5*time.Millisecond)
		close(done)
	}()

	// vài tick với pool chưa connect chỉ log lỗi, không panic
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
}
