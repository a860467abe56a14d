package app

import (
	"time"

	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/storage"
	"github.com/yungbote/catalog-backend/internal/upload"
	"github.com/yungbote/catalog-backend/internal/utils"
)

type Config struct {
	Port                string
	JWTSecretKey        string
	TokenTTL            time.Duration
	AdminUsername       string
	AdminPassword       string
	StorageProvider     string
	UploadDir           string
	UploadLimits        upload.Limits
	LoginRateLimitRPS   float64
	LoginRateLimitBurst int
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	tokenTTLSeconds := utils.GetEnvAsInt("TOKEN_TTL", 86400, log)
	adminUsername := utils.GetEnv("ADMIN_USERNAME", "admin", log)
	adminPassword := utils.GetEnv("ADMIN_PASSWORD", "", log)
	storageProvider := utils.GetEnv("STORAGE_PROVIDER", storage.ProviderLocal, log)
	uploadDir := utils.GetEnv("UPLOAD_DIR", "uploads", log)
	maxFileSize := utils.GetEnvAsInt64("MAX_FILE_SIZE", upload.DefaultMaxFileSize, log)
	maxFiles := utils.GetEnvAsInt("MAX_FILES_PER_UPLOAD", upload.DefaultMaxFiles, log)
	loginRPS := utils.GetEnvAsInt("LOGIN_RATE_LIMIT_RPS", 1, log)
	loginBurst := utils.GetEnvAsInt("LOGIN_RATE_LIMIT_BURST", 5, log)
	return Config{
		Port:                port,
		JWTSecretKey:        jwtSecretKey,
		TokenTTL:            time.Duration(tokenTTLSeconds) * time.Second,
		AdminUsername:       adminUsername,
		AdminPassword:       adminPassword,
		StorageProvider:     storageProvider,
		UploadDir:           uploadDir,
		UploadLimits:        upload.Limits{MaxFileSize: maxFileSize, MaxFiles: maxFiles},
		LoginRateLimitRPS:   float64(loginRPS),
		LoginRateLimitBurst: loginBurst,
	}
}
