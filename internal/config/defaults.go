package config

const (
	defaultDataDir            = "~/.local/share/shelf"
	defaultLogDir             = "~/.local/share/shelf/logs"
	defaultOMDBBaseURL        = "https://www.omdbapi.com/"
	defaultOMDBTimeoutSeconds = 15
	defaultUPCBaseURL         = "https://api.upcitemdb.com"
	defaultUPCTimeoutSeconds  = 20
	defaultPosterTargetWidth  = 300
	defaultPosterJPEGQuality  = 70
	defaultPosterTimeout      = 15
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

func defaultUPCEndpoints() []string {
	return []string{"/prod/trial/lookup", "/prod/v1/lookup", "/lookup"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		OMDB: OMDB{
			BaseURL:        defaultOMDBBaseURL,
			TimeoutSeconds: defaultOMDBTimeoutSeconds,
		},
		UPC: UPC{
			BaseURL:        defaultUPCBaseURL,
			Endpoints:      defaultUPCEndpoints(),
			TimeoutSeconds: defaultUPCTimeoutSeconds,
		},
		Posters: Posters{
			TargetWidth:    defaultPosterTargetWidth,
			JPEGQuality:    defaultPosterJPEGQuality,
			TimeoutSeconds: defaultPosterTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
