package ports

// Hasher provides content digests for files.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// FileDigest computes a short content digest of the file at path,
	// rendered as fixed-width hex.
	FileDigest(path string) (string, error)
}
