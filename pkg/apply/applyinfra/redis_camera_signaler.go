package applyinfra

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/luminahr/portal/pkg/errx"
	"github.com/luminahr/portal/pkg/kernel"
	"github.com/luminahr/portal/pkg/logx"
)

// cameraSignal mensaje publicado en el canal de cámara. Cualquier sesión
// de captura suscrita apaga su stream al recibir STOP_CAMERA_STREAMS.
type cameraSignal struct {
	Type    string `json:"type"`
	DraftID string `json:"draft_id,omitempty"`
}

const signalStopCameraStreams = "STOP_CAMERA_STREAMS"

// RedisCameraSignaler difunde señales de cámara vía pub/sub
type RedisCameraSignaler struct {
	client  *redis.Client
	channel string
}

// NewRedisCameraSignaler crea el señalizador sobre el canal configurado
func NewRedisCameraSignaler(client *redis.Client, channel string) *RedisCameraSignaler {
	return &RedisCameraSignaler{client: client, channel: channel}
}

// StopCameraStreams publica la orden de apagado para un borrador
func (s *RedisCameraSignaler) StopCameraStreams(ctx context.Context, id kernel.DraftID) error {
	payload, err := json.Marshal(cameraSignal{
		Type:    signalStopCameraStreams,
		DraftID: id.String(),
	})
	if err != nil {
		return errx.Wrap(err, "failed to marshal camera signal", errx.TypeInternal)
	}

	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		return errx.Wrap(err, "failed to publish camera signal", errx.TypeInternal).
			WithDetail("channel", s.channel)
	}

	logx.WithFields(logx.Fields{"draft_id": id.String(), "channel": s.channel}).
		Debug("camera stop signal published")
	return nil
}
