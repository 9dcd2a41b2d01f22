package warc

// Version information for the warc runtime.
const (
	// Version is the current version of the warc runtime.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides runtime information about the warc primitive.
type Info struct {
	// Version is the runtime version string.
	Version string

	// Algorithm is the reference-counting scheme in use.
	Algorithm string

	// InitialWeight is the configured per-handle initial weight block.
	InitialWeight uint64
}

// GetInfo returns information about the warc runtime.
//
// Example:
//
//	info := warc.GetInfo()
//	fmt.Printf("warc %s (%s)\n", info.Version, info.Algorithm)
func GetInfo() Info {
	return Info{
		Version:       Version,
		Algorithm:     "weighted reference counting",
		InitialWeight: InitialWeight,
	}
}
