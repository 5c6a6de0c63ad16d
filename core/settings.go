package core

import (
	"time"

	"github.com/jcelliott/lumber"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variables with this prefix override keys from the config file,
// i.e GOBOT_AUTHTOKEN replaces AuthToken.
const envPrefix = "GOBOT"

type jsonData struct {
	Development    bool
	AuthToken      string
	CommandPrefix  string
	Database       string
	OwnerIds       []string
	Blacklist      []string
	CommandTimeout time.Duration
	Cooldown       time.Duration
	CooldownBurst  int
}

type SettingsStorage struct {
	data jsonData
}

var Settings = SettingsStorage{jsonData{}}

// ReadSettings loads a json settings file, with .env and environment overrides applied.
func ReadSettings(settingsfile string) (*SettingsStorage, error) {
	if err := godotenv.Load(); err != nil {
		LogDebug("No .env file loaded: ", err)
	}

	v := viper.New()
	v.SetConfigFile(settingsfile)
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	// Every key needs a default so environment-only values reach Unmarshal.
	v.SetDefault("Development", false)
	v.SetDefault("AuthToken", "")
	v.SetDefault("CommandPrefix", "!")
	v.SetDefault("Database", "gobot.db")
	v.SetDefault("OwnerIds", []string{})
	v.SetDefault("Blacklist", []string{})
	v.SetDefault("CommandTimeout", "0s")
	v.SetDefault("Cooldown", "0s")
	v.SetDefault("CooldownBurst", 1)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	settings := new(SettingsStorage)
	if err := v.Unmarshal(&settings.data); err != nil {
		return nil, err
	}
	return settings, nil
}

// Load the settings into the package level Settings, exiting on failure.
func LoadSettings(settingsfile string) {
	loaded, err := ReadSettings(settingsfile)
	if err != nil {
		LogFatal("Failed to load configuration: ", err)
	}
	Settings = *loaded
	if !Settings.IsDevelopment() {
		SetLogLevel(lumber.INFO)
	} else {
		LogDebug("Loaded config successfully from ", settingsfile)
	}
}

// Get the bot auth token
func (s *SettingsStorage) AuthToken() string {
	return s.data.AuthToken
}

// Get the default prefix used for bot commands
func (s *SettingsStorage) CommandPrefix() string {
	return s.data.CommandPrefix
}

// Get whether or not we're running in Development mode.
func (s *SettingsStorage) IsDevelopment() bool {
	return s.data.Development
}

// Path of the sqlite database
func (s *SettingsStorage) Database() string {
	return s.data.Database
}

// Users allowed to run owner-only commands
func (s *SettingsStorage) OwnerIds() []string {
	return s.data.OwnerIds
}

// Users never allowed to run any command
func (s *SettingsStorage) Blacklist() []string {
	return s.data.Blacklist
}

// Upper bound on the time spent resolving and running one command. Zero means no limit.
func (s *SettingsStorage) CommandTimeout() time.Duration {
	return s.data.CommandTimeout
}

// Per-user command rate. Zero disables the cooldown.
func (s *SettingsStorage) Cooldown() (every time.Duration, burst int) {
	return s.data.Cooldown, s.data.CooldownBurst
}
