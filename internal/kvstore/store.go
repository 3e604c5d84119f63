// Package kvstore is the persistence bridge behind the cart and auth stores.
// It mirrors browser local storage semantics: best-effort writes, silent
// failure, and a miss on any read problem. Stored data is a convenience
// cache, never a source of truth the app cannot run without.
package kvstore

// Storage keys, wire-compatible with the browser storefront.
const (
	KeyAuthToken       = "fiesta_admin_token"
	KeyAuthUser        = "fiesta_admin_user"
	KeyCart            = "fiesta_cart"
	KeyFeaturedProduct = "fiesta_home_featured_product_id"
)

// Store is the pluggable persistence port. Implementations must never
// return errors to callers: Get reports a miss instead, Set and Clear are
// best-effort.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Clear(key string)
}
