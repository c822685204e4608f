package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/b0bbywan/go-spotify-dbus/logger"
)

const (
	AppName     = "spotify-dbus"
	AppVersion  = "0.1.0"
	EnvPrefix   = "SPOTIFY_DBUS"
	serviceType = "_http._tcp"
	domain      = "local."

	mprisPrefix = "org.mpris.MediaPlayer2"
)

type Config struct {
	Api       *ApiConfig
	Player    *PlayerConfig
	Zeroconf  *ZeroConfig
	LogLevel  logger.Level
	LogLevels map[string]logger.Level
}

type ApiConfig struct {
	Enabled bool
	Bind    string
	Port    int
}

// Addr returns the listen address of the API server.
func (a *ApiConfig) Addr() string {
	return net.JoinHostPort(a.Bind, fmt.Sprint(a.Port))
}

// PlayerConfig selects the MPRIS player and how the client reaches it.
type PlayerConfig struct {
	Target        string
	BusName       string
	RetryInterval time.Duration
	Timeout       time.Duration
}

type ZeroConfig struct {
	Enabled      bool
	InstanceName string
	ServiceType  string
	Domain       string
	Port         int
	TxtRecords   []string
	Listen       []net.Interface
}

// Flags returns the command-line flags understood by New.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	fs.String("config", "", "path to a config file")
	fs.String("player", "", "MPRIS player name (e.g. spotify)")
	fs.String("log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")
	fs.Int("port", 0, "API port")
	return fs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.enabled", true)
	v.SetDefault("api.port", 8018)
	v.SetDefault("bind", "127.0.0.1")

	v.SetDefault("player.target", "spotify")
	v.SetDefault("player.retry_interval", "10s")
	v.SetDefault("player.timeout", "5s")

	v.SetDefault("zeroconf.enabled", false)

	v.SetDefault("loglevel", "WARN")
	v.SetDefault("loglevels", map[string]string{})
}

// bindFlags maps explicitly set flags onto their config keys.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	bindings := map[string]string{
		"player":    "player.target",
		"log-level": "loglevel",
		"port":      "api.port",
	}
	for flag, key := range bindings {
		if f := fs.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// New loads the configuration from defaults, the optional config file,
// SPOTIFY_DBUS_* environment variables and fs (which may be nil).
func New(fs *pflag.FlagSet) (*Config, error) {
	return load(viper.New(), fs)
}

func load(v *viper.Viper, fs *pflag.FlagSet) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindFlags(v, fs); err != nil {
		return nil, err
	}

	if err := readConfigFile(v, fs); err != nil {
		return nil, err
	}

	return parse(v)
}

func readConfigFile(v *viper.Viper, fs *pflag.FlagSet) error {
	if fs != nil {
		if path, _ := fs.GetString("config"); path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("read config %s: %w", path, err)
			}
			return nil
		}
	}

	v.SetConfigName("config")                       // name of config file (without extension)
	v.SetConfigType("yaml")                         // config file format
	v.AddConfigPath(filepath.Join("/etc", AppName)) // Global configuration path
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", AppName)) // User config path
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional, continue with defaults if not found
		if _, isNotFound := err.(viper.ConfigFileNotFoundError); !isNotFound {
			logger.Warn("[config] failed to read config: %v", err)
		}
	}
	return nil
}

func parse(v *viper.Viper) (*Config, error) {
	port := v.GetInt("api.port")
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", port)
	}

	bind := v.GetString("bind")
	if net.ParseIP(bind) == nil {
		return nil, fmt.Errorf("invalid bind: %s", bind)
	}

	target := strings.TrimSpace(v.GetString("player.target"))
	if target == "" {
		return nil, fmt.Errorf("player.target cannot be empty")
	}

	retry := v.GetDuration("player.retry_interval")
	if retry <= 0 {
		retry = 10 * time.Second
	}
	timeout := v.GetDuration("player.timeout")
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	var interfaces []net.Interface
	if inet, err := interfaceForIP(bind); err == nil && inet != nil {
		interfaces = append(interfaces, *inet)
	}

	apiCfg := ApiConfig{
		Enabled: v.GetBool("api.enabled"),
		Bind:    bind,
		Port:    port,
	}

	playerCfg := PlayerConfig{
		Target:        target,
		BusName:       mprisPrefix + "." + target,
		RetryInterval: retry,
		Timeout:       timeout,
	}

	advertise := v.GetBool("zeroconf.enabled")
	if advertise && net.ParseIP(bind).IsLoopback() {
		logger.Warn("[config] zeroconf disabled: api bound to loopback %s", bind)
		advertise = false
	}

	zerocfg := ZeroConfig{
		Enabled:      advertise,
		InstanceName: AppName,
		ServiceType:  serviceType,
		Domain:       domain,
		Port:         port,
		TxtRecords:   []string{"version=" + AppVersion, "player=" + target},
		Listen:       interfaces,
	}

	cfg := Config{
		Api:       &apiCfg,
		Player:    &playerCfg,
		Zeroconf:  &zerocfg,
		LogLevel:  logger.ParseLevel(v.GetString("loglevel")),
		LogLevels: parseLogLevels(v.GetStringMapString("loglevels")),
	}

	return &cfg, nil
}

// parseLogLevels converts per-component level names (e.g. player: debug).
func parseLogLevels(raw map[string]string) map[string]logger.Level {
	levels := make(map[string]logger.Level, len(raw))
	for component, level := range raw {
		levels[component] = logger.ParseLevel(level)
	}
	return levels
}

// interfaceForIP returns the interface carrying ip. Loopback and wildcard
// binds yield no interface.
func interfaceForIP(ip string) (*net.Interface, error) {
	if ip == "127.0.0.1" || ip == "0.0.0.0" || ip == "::" || ip == "::1" {
		return nil, nil
	}
	listenIP := net.ParseIP(ip)
	if listenIP == nil {
		return nil, fmt.Errorf("invalid bind: %s", ip)
	}
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	for _, iface := range ifaces {
		addrs, _ := iface.Addrs()
		for _, addr := range addrs {
			var ifaceIP net.IP

			switch v := addr.(type) {
			case *net.IPNet:
				ifaceIP = v.IP
			case *net.IPAddr:
				ifaceIP = v.IP
			}

			if ifaceIP != nil && ifaceIP.Equal(listenIP) {
				return &iface, nil
			}
		}
	}

	return nil, fmt.Errorf("no interface found for IP %s", ip)
}

// WatchLogLevel reloads log levels whenever the config file changes. Other
// settings need a restart. It does nothing when no file was loaded.
func WatchLogLevel(fs *pflag.FlagSet) {
	v := viper.New()
	setDefaults(v)
	if err := bindFlags(v, fs); err != nil {
		logger.Warn("[config] cannot watch config: %v", err)
		return
	}
	if err := readConfigFile(v, fs); err != nil || v.ConfigFileUsed() == "" {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		level := logger.ParseLevel(v.GetString("loglevel"))
		logger.SetLevel(level)
		logger.SetPackageLevels(parseLogLevels(v.GetStringMapString("loglevels")))
		logger.Info("[config] %s changed, log level now %s", e.Name, level)
	})
	v.WatchConfig()
	logger.Debug("[config] watching %s", v.ConfigFileUsed())
}
