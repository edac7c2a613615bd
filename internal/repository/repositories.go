package repository

import (
	"fmt"

	"github.com/deppfellow/bookshelf/internal/config"
	"github.com/deppfellow/bookshelf/internal/server"
)

// Repositories holds the stores the services consume.
type Repositories struct {
	Book BookStore
}

// NewRepositories picks the book store for store.driver, on the connections
// the server opened.
func NewRepositories(s *server.Server) (*Repositories, error) {
	var book BookStore

	switch s.Config.Store.Driver {
	case config.StoreDriverPostgres:
		if s.DB == nil {
			return nil, fmt.Errorf("%s store driver needs a database connection", config.StoreDriverPostgres)
		}
		book = NewPostgresBookStore(s.DB.Pool)
	case config.StoreDriverRedis:
		if s.Redis == nil {
			return nil, fmt.Errorf("%s store driver needs a redis connection", config.StoreDriverRedis)
		}
		book = NewRedisBookStore(s.Redis, s.Config.Store.RedisPrefix)
	case config.StoreDriverMemory:
		book = NewMemoryBookStore()
	default:
		return nil, fmt.Errorf("unknown store driver %q", s.Config.Store.Driver)
	}

	return &Repositories{Book: book}, nil
}
