// Package version holds the application version constant.
package version

// Version is the application version reported by /api/system/version.
var Version = "1.0.0"
