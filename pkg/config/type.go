package config

type ToolConfig struct {
	// Serial device path, or "socket://host:port" for a ser2net bridge.
	SerialDevice string `toml:"serial_device"`
	// Data link destination address; 0x3F addresses the heat meter.
	DestinationAddress byte `toml:"destination_address"`
	ReadTimeoutSeconds uint `toml:"read_timeout_seconds"`
}

type MeterAPIConfig struct {
	SerialDevice        string `toml:"serial_device"`
	DestinationAddress  byte   `toml:"destination_address"`
	ReadTimeoutSeconds  uint   `toml:"read_timeout_seconds"`
	ListenAddress       string `toml:"listen_address"`
	ListenPort          int    `toml:"listen_port"`
	PollIntervalSeconds uint   `toml:"poll_interval_seconds"`
	// Register IDs polled each interval.
	Registers []uint16 `toml:"registers"`
}
