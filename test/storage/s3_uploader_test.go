package storage_test

import (
	"testing"

	"nowpad/src/storage"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestObjectKey_ScopedByService(t *testing.T) {
	uploader, err := storage.NewLogUploader(&storage.S3Config{
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
		Region:          "us-east-1",
		Bucket:          "nowpad-logs",
	}, "nowpad-test", logrus.New())
	assert.NoError(t, err)

	// サービス名でオブジェクトキーの名前空間を分ける
	assert.Equal(t, "logs/nowpad-test/nowpad_2025-05-01.log",
		uploader.ObjectKey("nowpad_2025-05-01.log"))
}

func TestObjectKey_DistinctPerDeployment(t *testing.T) {
	cfg := &storage.S3Config{
		Region: "us-east-1",
		Bucket: "nowpad-logs",
	}

	first, err := storage.NewLogUploader(cfg, "nowpad-alpha", logrus.New())
	assert.NoError(t, err)
	second, err := storage.NewLogUploader(cfg, "nowpad-beta", logrus.New())
	assert.NoError(t, err)

	// 同じバケットを共有してもデプロイメント間でキーが衝突しない
	assert.NotEqual(t, first.ObjectKey("app.log"), second.ObjectKey("app.log"))
}
