// version.go
package version

import "fmt"

// AppName holds the name of the client library
var AppName = "go-solosync-client"

// Version holds the current version of the client library
var Version = "0.1.0"

// UserAgentBase is the product token used in the User-Agent header
var UserAgentBase = "go-solosync-client"

// GetAppName returns the name of the client library
func GetAppName() string {
	return AppName
}

// GetVersion returns the current version of the client library
func GetVersion() string {
	return Version
}

// GetUserAgentHeader returns the User-Agent string sent with every request
func GetUserAgentHeader() string {
	return fmt.Sprintf("%s/%s", UserAgentBase, Version)
}
