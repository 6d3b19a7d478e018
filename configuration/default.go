package configuration

func Default() *Configuration {
	return &Configuration{
		HttpAddr:          ":3000",
		File:              "db.json",
		ReadOnly:          false,
		Statics:           "",
		AllowedOrigins:    "*",
		EnableCompression: false,
		Debug:             false,
		ShowBanner:        true,
		ShowConfig:        false,
	}
}
