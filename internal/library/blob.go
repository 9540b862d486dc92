package library

import "context"

// BlobStore stores the binary PDF artifact for each document under a
// key following the BlobKey convention. Locators issued by Put are
// dereferenceable by the viewer and encode the key recoverably, so
// deletion never needs a side-channel lookup.
type BlobStore interface {
	// Put stores data under key, overwriting any existing blob
	// (idempotent upload), and returns a stable locator.
	Put(ctx context.Context, key string, data []byte) (locator string, err error)

	// Get retrieves the blob stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Remove deletes zero or more blobs. Removing an absent key is not
	// an error; Remove fails only on transport or permission failure.
	Remove(ctx context.Context, keys []string) error

	// Resolve maps a previously issued locator back to its storage key.
	Resolve(locator string) (key string, err error)

	// ValidateSetup verifies that the backing storage is accessible and
	// properly configured.
	ValidateSetup(ctx context.Context) error
}
