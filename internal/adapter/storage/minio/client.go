// internal/adapter/storage/minio/client.go
package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appconfig "github.com/GoArmGo/VideoApp/internal/config"
	"github.com/GoArmGo/VideoApp/internal/domain"
)

// Ключ метаданных объекта, под которым хранится исходное имя файла.
const filenameMetadataKey = "filename"

// Client представляет собой клиент для взаимодействия с MinIO (S3-совместимым хранилищем).
// Хранит бинарное содержимое видео; ключ объекта — сгенерированный UUID,
// который реляционная часть использует как id видео.
type Client struct {
	s3Client   *s3.Client
	uploader   *manager.Uploader
	bucketName string
}

// NewMinioClient создает и инициализирует новый MinIO Client, используя переданную конфигурацию.
// Проверяет существование бакета и при необходимости создает его.
func NewMinioClient(cfg *appconfig.Config) (*Client, error) {
	if cfg.MinioAccessKeyID == "" || cfg.MinioSecretAccessKey == "" || cfg.MinioBucketName == "" ||
		cfg.MinioEndpoint == "" || cfg.MinioRegion == "" {
		return nil, fmt.Errorf("MinIO credentials (MINIO_ACCESS_KEY_ID, MINIO_SECRET_ACCESS_KEY, MINIO_BUCKET_NAME, MINIO_ENDPOINT, MINIO_REGION) must be set in environment variables")
	}

	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}
	fullMinioEndpointURL := fmt.Sprintf("%s://%s", scheme, cfg.MinioEndpoint)

	cfgAws, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.MinioAccessKeyID, cfg.MinioSecretAccessKey, "")),
		awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL:    fullMinioEndpointURL,
					Source: aws.EndpointSourceCustom,
				}, nil
			})),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for MinIO: %w", err)
	}

	s3Client := s3.NewFromConfig(cfgAws, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	uploader := manager.NewUploader(s3Client)

	// Проверяем существование бакета
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(cfg.MinioBucketName),
	})

	if err != nil {
		log.Printf("Bucket '%s' not found, creating...", cfg.MinioBucketName)

		_, createErr := s3Client.CreateBucket(context.TODO(), &s3.CreateBucketInput{
			Bucket: aws.String(cfg.MinioBucketName),
			CreateBucketConfiguration: &types.CreateBucketConfiguration{
				LocationConstraint: types.BucketLocationConstraint(cfg.MinioRegion),
			},
		})
		if createErr != nil {
			return nil, fmt.Errorf("failed to create bucket '%s': %w", cfg.MinioBucketName, createErr)
		}

		// Ждем пока бакет станет доступен
		waiter := s3.NewBucketExistsWaiter(s3Client)
		if err := waiter.Wait(context.TODO(), &s3.HeadBucketInput{
			Bucket: aws.String(cfg.MinioBucketName),
		}, 30*time.Second); err != nil {
			return nil, fmt.Errorf("failed waiting for bucket '%s' to be created: %w", cfg.MinioBucketName, err)
		}

		log.Printf("Bucket '%s' created successfully", cfg.MinioBucketName)
	}

	return &Client{
		s3Client:   s3Client,
		uploader:   uploader,
		bucketName: cfg.MinioBucketName,
	}, nil
}

// UploadFile загружает содержимое видео в бакет под ключом key.
// Исходное имя файла сохраняется в метаданных объекта, чтобы отдать его при скачивании.
func (c *Client) UploadFile(ctx context.Context, key string, reader io.Reader, contentType, filename string) error {
	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			filenameMetadataKey: filename,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s to bucket %s: %w", key, c.bucketName, err)
	}
	return nil
}

// GetFile возвращает поток содержимого объекта и исходное имя файла.
// Тело не буферизуется: вызывающий читает его по частям и обязан закрыть.
// Если объекта нет, возвращает domain.ErrVideoNotFound.
func (c *Client) GetFile(ctx context.Context, key string) (io.ReadCloser, string, error) {
	output, err := c.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, "", fmt.Errorf("object %s: %w", key, domain.ErrVideoNotFound)
		}
		return nil, "", fmt.Errorf("failed to get object %s from bucket %s: %w", key, c.bucketName, err)
	}

	filename := output.Metadata[filenameMetadataKey]
	if filename == "" {
		filename = key
	}
	return output.Body, filename, nil
}

// DeleteFile удаляет объект из бакета. Используется как компенсация,
// когда реляционная транзакция загрузки не прошла.
func (c *Client) DeleteFile(ctx context.Context, key string) error {
	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s from bucket %s: %w", key, c.bucketName, err)
	}
	return nil
}
