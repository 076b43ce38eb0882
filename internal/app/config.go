package app

import (
	"strings"
	"time"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/services"
	"github.com/openbims/bims-backend/internal/utils"
)

type Config struct {
	Port            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	AllowOrigins    []string
	Locality        services.Locality
	SweeperLockPath string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 604800, log)
	origins := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173", log)
	return Config{
		Port:            utils.GetEnv("PORT", "8080", log),
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		AllowOrigins:    strings.Split(origins, ","),
		Locality: services.Locality{
			Province: utils.GetEnv("BARANGAY_PROVINCE", "Cebu", log),
			City:     utils.GetEnv("BARANGAY_CITY", "Cebu City", log),
			Barangay: utils.GetEnv("BARANGAY_NAME", "San Roque", log),
		},
		SweeperLockPath: utils.GetEnv("SWEEPER_LOCK_PATH", "/tmp/bims-sweeper.lock", log),
	}
}
