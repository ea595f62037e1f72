package store

import "context"

// Claves fijas del almacenamiento durable. Cada clave es un blob JSON
// independiente; no hay transaccionalidad entre claves ni campo de versión.
const (
	KeyTraits   = "mindfit_traits"
	KeyPrefs    = "mindfit_prefs"
	KeyHistory  = "mindfit_history"
	KeyCloset   = "mindfit_closet"
	KeyTutorial = "mindfit_tutorial"
)

// KV abstrae el almacenamiento local de blobs JSON por clave.
// Set sobreescribe idempotentemente; Get reporta presencia con ok.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
