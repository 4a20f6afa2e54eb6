package core

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config contains all of the configuration options available to any of the
// client's components.
type Config struct {
	// Hostname or IP address of the login server.
	LoginServerHost string `mapstructure:"login_server_host"`
	// Port on which the login server is accepting connections.
	LoginServerPort int `mapstructure:"login_server_port"`
	// Version number reported during the login handshake.
	GameVersion uint32 `mapstructure:"game_version"`
	// Client type byte reported during the login handshake.
	ClientType int `mapstructure:"client_type"`

	Logging struct {
		// Full path to file to which logs will be written. Blank will write to stdout.
		LogFilePath string `mapstructure:"log_file_path"`
		// Minimum level of a log required to be written. Options: debug, info, warn, error
		LogLevel string `mapstructure:"log_level"`
		// Include the caller's filename and line number in logs.
		IncludeCaller bool `mapstructure:"include_caller"`
	} `mapstructure:"logging"`

	Settings struct {
		// Full path to the sqlite file holding persisted client settings.
		Filename string `mapstructure:"filename"`
	} `mapstructure:"settings"`

	Debugging struct {
		// Log decoded packets to the application log.
		PacketLoggingEnabled bool `mapstructure:"packet_logging_enabled"`
		// Number of recent frames retained for post-mortem dumps.
		PacketHistorySize int `mapstructure:"packet_history_size"`
	} `mapstructure:"debugging"`
}

const envVarPrefix = "RAGNET"

// LoadConfig initializes Viper with the contents of the config file under configPath.
func LoadConfig(configPath string) *Config {
	viper.AddConfigPath(configPath)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix(envVarPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if errors.Is(err, viper.ConfigFileNotFoundError{}) {
			fmt.Printf("error reading config file: no config file in path %s", configPath)
		} else {
			fmt.Printf("error reading config file: %v", err)
		}
		os.Exit(1)
	}

	// This allows us to set nested yaml config options through environment
	// variables. For example, logging.log_level can be set using:
	// <envVarPrefix>_LOGGING_LOG_LEVEL
	for _, k := range viper.AllKeys() {
		envVar := strings.ReplaceAll(strings.ToUpper(k), ".", "_")
		if err := viper.BindEnv(k, envVarPrefix+"_"+envVar); err != nil {
			fmt.Printf("error binding %s to %s", k, envVarPrefix+"_"+envVar)
			os.Exit(1)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		fmt.Printf("error unmarshaling config object: %v", err)
		os.Exit(1)
	}
	return config
}

// LoginServerAddress returns the fully qualified address of the login server.
func (c *Config) LoginServerAddress() string {
	return fmt.Sprintf("%s:%d", c.LoginServerHost, c.LoginServerPort)
}
