package storage

import "fmt"

// Open selects the KV backend from the configured driver.
func Open(driver, sqlitePath, databaseURL, redisURL string) (KV, error) {
	switch driver {
	case "", "sqlite":
		return OpenSQLite(sqlitePath)
	case "postgres":
		return OpenPostgres(databaseURL)
	case "redis":
		return OpenRedis(redisURL)
	default:
		return nil, fmt.Errorf("driver de stockage inconnu: %s", driver)
	}
}
