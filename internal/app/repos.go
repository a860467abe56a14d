package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/repos"
)

type Repos struct {
	Product repos.ProductRepo
	Drawing repos.DrawingRepo
	History repos.HistoryRepo
	User    repos.UserRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Product: repos.NewProductRepo(db, log),
		Drawing: repos.NewDrawingRepo(db, log),
		History: repos.NewHistoryRepo(db, log),
		User:    repos.NewUserRepo(db, log),
	}
}
