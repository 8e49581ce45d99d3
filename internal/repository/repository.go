package repository

import (
	"database/sql"

	"github.com/sysu-ecnc-dev/worktime-manager/backend/internal/config"
)

// Repository 聚合员工、排班模板、周排班和休息时间四类数据的访问，
// 所有查询都带上配置中的超时时间
type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}
