// Package fsx define el puerto de almacenamiento de archivos.
package fsx

import (
	"context"
	"io"
	"net/http"

	"github.com/luminahr/portal/pkg/errx"
)

// FileSystem abstrae el backend de almacenamiento (local o S3)
type FileSystem interface {
	// Write guarda el contenido bajo la clave dada
	Write(ctx context.Context, key string, r io.Reader, contentType string) error

	// Read abre el contenido almacenado bajo la clave
	Read(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete elimina el objeto; no es error si no existe
	Delete(ctx context.Context, key string) error

	// Exists verifica si la clave existe
	Exists(ctx context.Context, key string) (bool, error)
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("FSX")

var (
	CodeObjectNotFound = ErrRegistry.Register("OBJECT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Stored file not found")
	CodeStorageFailure = ErrRegistry.Register("STORAGE_FAILURE", errx.TypeInternal, http.StatusInternalServerError, "File storage operation failed")
)

func ErrObjectNotFound() *errx.Error {
	return ErrRegistry.New(CodeObjectNotFound)
}

func ErrStorageFailure(err error) *errx.Error {
	return ErrRegistry.NewWithErr(CodeStorageFailure, err)
}
