package files

import "context"

// Uploader es el colaborador externo de archivos: recibe bytes bajo una key
// con prefijo del usuario y devuelve una URL pública durable.
type Uploader interface {
	Upload(ctx context.Context, key string, contentType string, data []byte) (string, error)
}
