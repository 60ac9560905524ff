package repository

import (
	"context"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
)

type SupportRepository interface {
	List(ctx context.Context) ([]model.SupportMessage, error)
	// IDを採番（件数+1）して追記する
	Append(ctx context.Context, msg model.SupportMessage) (model.SupportMessage, error)
}
