package constants

const (
	Version        = `0.9.2`
	AppName        = `backlinks`
	ConfigFile     = `backlinks`
	ConfigFileType = `yaml`
	EnvPrefix      = `BACKLINKS`

	DefaultDocsDir  = `docs`
	DefaultSiteDir  = `site`
	DefaultSiteName = `Documentation`
	DefaultWorkers  = 4
	DefaultLogLevel = `info`

	// RenderCacheSize bounds the rendered page bodies kept between builds.
	RenderCacheSize = 4096
)
