package types

// Version is the herald release version, overridden at build time via
// -ldflags "-X github.com/m-mizutani/herald/pkg/domain/types.Version=..."
var Version = "dev"
