// Package fsxlocal implementa fsx.FileSystem sobre el sistema de archivos local.
package fsxlocal

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/luminahr/portal/pkg/fsx"
)

// LocalFileSystem guarda los objetos bajo un directorio base
type LocalFileSystem struct {
	basePath string
}

// NewLocalFileSystem crea el directorio base si no existe
func NewLocalFileSystem(basePath string) (*LocalFileSystem, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fsx.ErrStorageFailure(err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fsx.ErrStorageFailure(err)
	}
	return &LocalFileSystem{basePath: abs}, nil
}

// GetBasePath retorna el directorio base absoluto
func (l *LocalFileSystem) GetBasePath() string {
	return l.basePath
}

// resolve traduce una clave a una ruta local, rechazando escapes del base path
func (l *LocalFileSystem) resolve(key string) (string, error) {
	clean := filepath.Join(l.basePath, filepath.FromSlash(key))
	if !strings.HasPrefix(clean, l.basePath+string(os.PathSeparator)) && clean != l.basePath {
		return "", fsx.ErrStorageFailure(errors.New("key escapes base path"))
	}
	return clean, nil
}

func (l *LocalFileSystem) Write(ctx context.Context, key string, r io.Reader, contentType string) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fsx.ErrStorageFailure(err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fsx.ErrStorageFailure(err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fsx.ErrStorageFailure(err)
	}
	return nil
}

func (l *LocalFileSystem) Read(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := l.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fsx.ErrObjectNotFound().WithDetail("key", key)
		}
		return nil, fsx.ErrStorageFailure(err)
	}
	return f, nil
}

func (l *LocalFileSystem) Delete(ctx context.Context, key string) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fsx.ErrStorageFailure(err)
	}
	return nil
}

func (l *LocalFileSystem) Exists(ctx context.Context, key string) (bool, error) {
	path, err := l.resolve(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fsx.ErrStorageFailure(err)
	}
	return true, nil
}
