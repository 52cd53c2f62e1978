// Package data содержит контекст хранения приложения VRM Monitor.
package data

import (
	"context"
	"database/sql"

	"github.com/bagdasarian/vrm-monitor/internal/identitydb"
)

// ApplicationContext - контекст хранения приложения. Это базовый
// identity-контекст без дополнительных сущностей и настроек.
type ApplicationContext struct {
	*identitydb.Context
}

// Open передаёт opts базовому контексту без изменений
func Open(ctx context.Context, opts identitydb.Options) (*ApplicationContext, error) {
	base, err := identitydb.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &ApplicationContext{Context: base}, nil
}

func New(sqlDB *sql.DB) *ApplicationContext {
	return &ApplicationContext{Context: identitydb.New(sqlDB)}
}
