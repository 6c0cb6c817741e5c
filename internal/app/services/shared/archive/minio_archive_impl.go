package archive

import (
	"bytes"
	"context"

	"medirec-service/internal/app/contracts"
	"medirec-service/internal/pkg/constvars"
	"medirec-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
)

type minioArchive struct {
	MinioClient *minio.Client
	BucketName  string
}

func NewMinioArchive(minioClient *minio.Client, bucketName string) contracts.ArchiveStorage {
	return &minioArchive{
		MinioClient: minioClient,
		BucketName:  bucketName,
	}
}

// StoreSnapshot serializes the record and writes it under objectName so a
// deleted patient can be recovered by operations if needed.
func (m *minioArchive) StoreSnapshot(ctx context.Context, objectName string, record map[string]interface{}) error {
	data, err := json.Marshal(record)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	_, err = m.MinioClient.PutObject(
		ctx,
		m.BucketName,
		objectName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: constvars.MIMEApplicationJSON},
	)
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	return nil
}
