package version

// set with -ldflags at build time
var (
	Version   = "dev"
	Meta      = ""
	BuildDate = ""
)
