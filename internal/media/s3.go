// Package media реализует блоб-хранилище медиафайлов на основе S3.
// Идентификатор файла — hex-представление sha256 его содержимого,
// поэтому повторная загрузка того же файла идемпотентна.
package media

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/homefind/rental-backend/internal/apperr"
	"github.com/homefind/rental-backend/internal/config"
)

// Store клиент блоб-хранилища медиафайлов.
type Store struct {
	client *s3.Client
	bucket string
}

// New создаёт S3-клиент для заданного бакета.
func New(ctx context.Context, cfg config.MediaStorage) (*Store, error) {
	const op = "media.New"
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
	}, nil
}

// Exists проверяет наличие файла с данным идентификатором.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	const op = "media.Exists"
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id),
	})
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Upload сохраняет содержимое и возвращает его идентификатор (sha256).
func (s *Store) Upload(ctx context.Context, data []byte) (string, error) {
	const op = "media.Upload"
	sum := sha256.Sum256(data)
	id := hex.EncodeToString(sum[:])

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Download возвращает содержимое файла по идентификатору.
func (s *Store) Download(ctx context.Context, id string) ([]byte, error) {
	const op = "media.Download"
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id),
	})
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return nil, apperr.E(apperr.KindNotFound, "media", id, "media does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}
