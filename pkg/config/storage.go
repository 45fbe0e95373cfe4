package config

type StorageConfig struct {
	Mode      string // "local" o "s3"
	AWSRegion string
	AWSBucket string
	UploadDir string
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Mode:      getEnv("STORAGE_MODE", "local"),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		AWSBucket: getEnv("AWS_BUCKET", "portal-uploads"),
		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
	}
}
