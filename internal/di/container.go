package di

import (
	"github.com/GoArmGo/VideoApp/internal/adapter/storage/minio"
	"github.com/GoArmGo/VideoApp/internal/app"
	"github.com/GoArmGo/VideoApp/internal/config"
	"github.com/GoArmGo/VideoApp/internal/database/client"
	"github.com/GoArmGo/VideoApp/internal/database/storage"
	"github.com/GoArmGo/VideoApp/internal/logger"
	"github.com/GoArmGo/VideoApp/internal/rabbitmq"
	"github.com/GoArmGo/VideoApp/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Подключение к PostgreSQL (sqlx + GORM) и миграции
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Хранилища
	videoStorage := storage.NewVideoStorage(dbClient.DB, slogger)
	interactionStorage := storage.NewInteractionStorage(dbClient.DB, slogger)
	userStorage := storage.NewUserStorage(dbClient.Gorm, slogger)

	// 4. Блоб-хранилище (S3 / MinIO)
	fileStorage, err := minio.NewMinioClient(cfg)
	if err != nil {
		return nil, err
	}

	// 5. Клиент RabbitMQ (publisher и consumer — один клиент)
	rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 6. Бизнес-логика
	videoUseCase := usecase.NewVideoUseCase(videoStorage, interactionStorage, userStorage, fileStorage, slogger)
	interactionUseCase := usecase.NewInteractionUseCase(interactionStorage, slogger)
	userUseCase := usecase.NewUserUseCase(userStorage, slogger)

	// 7. Лимитер одновременных загрузок
	uploadLimiter := make(chan struct{}, cfg.UploadConcurrency)

	application := app.NewApp(
		cfg,
		slogger,
		dbClient,
		videoUseCase,
		interactionUseCase,
		userUseCase,
		rabbitMQClient,
		rabbitMQClient,
		uploadLimiter,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
