package blob

import (
	"context"
	"fmt"
	"os"
)

// Open selects a blob.Store implementation using environment variables.
//
//	GENEPACK_BLOB_DRIVER: fs|s3|memory (default fs)
//	GENEPACK_BLOB_FS_ROOT: directory root when driver=fs (default ./genes_optimized)
//	(S3 specific variables documented in the s3 package)
//
// The fsRoot argument, when non-empty, overrides GENEPACK_BLOB_FS_ROOT; the
// pipeline CLI passes its -output flag through here.
func Open(ctx context.Context, fsRoot string) (Store, error) {
	driver := os.Getenv("GENEPACK_BLOB_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		root := fsRoot
		if root == "" {
			root = os.Getenv("GENEPACK_BLOB_FS_ROOT")
		}
		return NewFilesystem(root)
	case DriverS3:
		return OpenS3FromEnv(ctx)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
