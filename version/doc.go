// Package version reports build metadata for txtbundle.
//
// Values come from linker flags when set, for example
//
//	-ldflags "-X github.com/dendrascience/txtbundle/version.Version=v1.0.0"
//
// and otherwise from the VCS settings Go embeds in the binary. Development
// builds report "development".
package version
