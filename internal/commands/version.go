package commands

// Version is the application version. Set at build time.
var Version = "0.1.0"
