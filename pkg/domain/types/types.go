package types

// Version is the application version, overwritten via ldflags at release build
var Version = "v0.1.0"

// AppName is used for health responses and user agent strings
const AppName = "storeget"
