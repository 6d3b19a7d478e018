package configuration

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	File              string `usage:"JSON file with the collections"`
	ReadOnly          bool   `usage:"never write the file, changes only live in memory (ephemeral deployments)"`
	Statics           string `usage:"statics directory"`
	AllowedOrigins    string `usage:"comma separated list of CORS origins"`
	EnableCompression bool   `usage:"gzip responses"`
	Debug             bool   `usage:"verbose logging"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
}
