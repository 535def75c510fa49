package objectstorage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config настройки S3 совместимого хранилища
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string // Пусто = AWS S3
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	UploadTTL       time.Duration
}

// PresignedUpload подписанный PUT запрос для загрузки файла клиентом
type PresignedUpload struct {
	URL       string
	Method    string
	Headers   map[string]string
	ExpiresAt time.Time
}

// Client выдает подписанные ссылки на загрузку в S3
type Client struct {
	presigner *s3.PresignClient
	cfg       Config
	log       Logger
}

// NewClient создает клиент хранилища
// Статические ключи используются, если заданы, иначе стандартная цепочка AWS
func NewClient(ctx context.Context, cfg Config, log Logger) (*Client, error) {
	if cfg.Bucket == "" {
		return nil, ErrNotConfigured
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{
		presigner: s3.NewPresignClient(s3Client),
		cfg:       cfg,
		log:       log,
	}, nil
}

// PresignUpload подписывает PUT запрос на загрузку объекта с указанным ключом
func (c *Client) PresignUpload(ctx context.Context, key, contentType string) (*PresignedUpload, error) {
	req, err := c.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(c.cfg.UploadTTL))
	if err != nil {
		c.log.Error("Failed to presign upload: key=%s, error=%v", key, err)
		return nil, fmt.Errorf("%w: %v", ErrPresign, err)
	}

	headers := make(map[string]string, len(req.SignedHeader))
	for name, values := range req.SignedHeader {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}

	return &PresignedUpload{
		URL:       req.URL,
		Method:    req.Method,
		Headers:   headers,
		ExpiresAt: time.Now().Add(c.cfg.UploadTTL),
	}, nil
}

// PublicURL адрес объекта для чтения
func (c *Client) PublicURL(key string) string {
	base := strings.TrimRight(c.cfg.PublicBaseURL, "/")
	if base == "" {
		return key
	}
	return base + "/" + key
}
