package config

var Version = "unknown"

type Config struct {
	Config string
	Data   Data
}

type Data struct {
	Global GlobalConfig
	Input  InputConfig
	Listen ListenConfig
	Dump   DumpConfig
}

type GlobalConfig struct {
	LogLevel string `default:"info"`
}

type InputConfig struct {
	// Path is a file of raw frame bytes; "-" reads stdin.
	Path string
}

type ListenConfig struct {
	Addr      string
	Handshake bool `default:"true"`
}

type DumpConfig struct {
	// Output is an NDJSON record file; a .gz suffix enables compression.
	Output string
	// Compat126 decodes the historical 4-byte extended length for base
	// length code 126.
	Compat126 bool
	// Limit caps the per-connection accumulation buffer, in bytes.
	Limit int `default:"1048576"`
}
