package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/gertvdijk/gokmp/pkg/kmp"
	"github.com/gertvdijk/gokmp/pkg/pathing"
)

var (
	ActiveToolConfig     *ToolConfig
	ActiveMeterAPIConfig *MeterAPIConfig
)

func LoadToolConfig() error {
	cfg := &ToolConfig{
		SerialDevice:       "/dev/ttyUSB0",
		DestinationAddress: kmp.DestinationHeatMeter,
		ReadTimeoutSeconds: 2,
	}
	configPath := filepath.Join(pathing.GetConfigDir(), "kmptool.toml")
	if err := loadOrCreate(configPath, cfg); err != nil {
		return err
	}
	ActiveToolConfig = cfg
	return nil
}

func LoadMeterAPIConfig() error {
	cfg := &MeterAPIConfig{
		SerialDevice:        "/dev/ttyUSB0",
		DestinationAddress:  kmp.DestinationHeatMeter,
		ReadTimeoutSeconds:  2,
		ListenAddress:       "0.0.0.0",
		ListenPort:          9040,
		PollIntervalSeconds: 60,
		// Energy, volume, flow, power, in/out/diff temperatures.
		Registers: []uint16{60, 68, 74, 80, 86, 87, 89},
	}
	configPath := filepath.Join(pathing.GetConfigDir(), "meter_api.toml")
	if err := loadOrCreate(configPath, cfg); err != nil {
		return err
	}
	ActiveMeterAPIConfig = cfg
	return nil
}

// loadOrCreate decodes the TOML file at configPath into cfg, writing cfg
// out as the default config first when the file does not exist yet.
func loadOrCreate(configPath string, cfg any) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return err
		}
		cfgFile, err := os.Create(configPath)
		if err != nil {
			return err
		}
		defer cfgFile.Close()
		return toml.NewEncoder(cfgFile).Encode(cfg)
	}

	_, err := toml.DecodeFile(configPath, cfg)
	return err
}
