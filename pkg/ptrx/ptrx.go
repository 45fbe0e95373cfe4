// Package ptrx provee helpers para trabajar con punteros opcionales.
package ptrx

// Ptr retorna un puntero al valor dado
func Ptr[T any](v T) *T {
	return &v
}

// Deref retorna el valor apuntado o el default si el puntero es nil
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
