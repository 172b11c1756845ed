package repo

import (
	"database/sql"

	"github.com/afumu/studydesk/store/core"
)

// Repository 是数据访问层的入口，持有连接池和数据库路径
type Repository struct {
	pool   *core.ConnectionPool
	dbPath string
}

// New 创建一个新的 Repository
func New(pool *core.ConnectionPool, dbPath string) *Repository {
	return &Repository{
		pool:   pool,
		dbPath: dbPath,
	}
}

// conn 返回当前数据库连接；连接失效时由池负责重建
func (r *Repository) conn() (*sql.DB, error) {
	return r.pool.GetConnection(r.dbPath)
}
