package driver

// LibraryVersion is injected at build time with
// -ldflags "-X github.com/seuros/gopher-graph/src/driver.LibraryVersion=v1.2.3".
var LibraryVersion = "dev"

// Version returns the current version of the gopher-graph driver
func Version() string {
	return LibraryVersion
}

// UserAgent returns the user agent string sent to the server
func UserAgent() string {
	return "gopher-graph/" + LibraryVersion
}
