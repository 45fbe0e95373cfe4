package config

import "time"

// DraftConfig controla la persistencia y el ciclo de vida de los borradores
type DraftConfig struct {
	Retention     time.Duration // edad máxima de un borrador inactivo
	SweepInterval time.Duration // frecuencia del barrido de limpieza
	MaxUploadSize int64         // bytes, por archivo adjunto
	CameraChannel string        // canal de broadcast para liberar cámaras
}

func loadDraftConfig() DraftConfig {
	return DraftConfig{
		Retention:     getEnvDuration("DRAFT_RETENTION", 30*24*time.Hour),
		SweepInterval: getEnvDuration("DRAFT_SWEEP_INTERVAL", 6*time.Hour),
		MaxUploadSize: getEnvInt64("DRAFT_MAX_UPLOAD_SIZE", 25*1024*1024),
		CameraChannel: getEnv("CAMERA_BROADCAST_CHANNEL", "portal:camera"),
	}
}

// ParseConfig controla el servicio de extracción de campos del CV
type ParseConfig struct {
	Mode         string // "stub" u "openai"
	StubDelay    time.Duration
	OpenAIAPIKey string
	OpenAIModel  string
}

func loadParseConfig() ParseConfig {
	return ParseConfig{
		Mode:         getEnv("CV_PARSE_MODE", "stub"),
		StubDelay:    getEnvDuration("CV_PARSE_STUB_DELAY", 2*time.Second),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	}
}
