package server

import (
	"fmt"

	"github.com/mmynk/godutch/internal/config"
	"github.com/mmynk/godutch/internal/storage"
	"github.com/mmynk/godutch/internal/storage/filestore"
	"github.com/mmynk/godutch/internal/storage/redisstore"
	"github.com/mmynk/godutch/internal/storage/sqlite"
)

// OpenStore opens the storage backend selected by cfg.Storage.Driver.
func OpenStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverFile:
		return filestore.New(cfg.Storage.Dir)
	case config.DriverSQLite:
		return sqlite.New(cfg.Storage.SQLitePath)
	case config.DriverRedis:
		return redisstore.New(redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
