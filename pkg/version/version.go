package version

const (
	// AppName is the name of the application
	AppName = "license-plate-ocr"
	// Version is the current version
	Version = "1.2.0"
	// Author is the author of the application
	Author = "MoosaTae"
)

// GetFullName returns the full name with version
func GetFullName() string {
	return AppName + " v" + Version
}
