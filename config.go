package feeddetector

import (
	"fmt"
	"io/ioutil"
	"regexp"
	"strings"
	"time"

	"github.com/alecthomas/log4go"
	"gopkg.in/yaml.v2"
)

// Config is the configuration instance the rest of feeddetector, and its
// cmd/feeddetect, console, and internal/batch callers, should access for
// global configuration values. See FeedDetectorConfig for available members.
var Config FeedDetectorConfig

// ConfigName is the path (can be relative or absolute) to the config file
// that should be read.
var ConfigName = "feeddetect.yaml"

// extraDenyMatch is compiled from Config.ExtraDenyPattern by readConfig, and
// consulted by isValidURL (denylist.go) in addition to the built-in deny
// list.
var extraDenyMatch *regexp.Regexp

func init() {
	err := readConfig()
	if err != nil {
		if strings.Contains(err.Error(), "no such file or directory") {
			log4go.Info("Did not find config file %v, continuing with defaults", ConfigName)
		} else {
			panic(err.Error())
		}
	}
}

// FeedDetectorConfig defines the available global configuration parameters.
// It reads values straight from the config file (feeddetect.yaml by
// default). See SetDefaultConfig for default values.
type FeedDetectorConfig struct {
	UserAgent        string `yaml:"user_agent"`
	FetchTimeout     string `yaml:"fetch_timeout"`
	MaxBodyBytes     int64  `yaml:"max_body_bytes"`
	ExtraDenyPattern string `yaml:"extra_deny_pattern"`
	StripArticleBody bool   `yaml:"strip_article_body"`

	Batch struct {
		NumSimultaneousFetchers int `yaml:"num_simultaneous_fetchers"`
		ResultCacheSize         int `yaml:"result_cache_size"`
	} `yaml:"batch"`

	Cassandra struct {
		Hosts             []string `yaml:"hosts"`
		Keyspace          string   `yaml:"keyspace"`
		ReplicationFactor int      `yaml:"replication_factor"`
		Timeout           string   `yaml:"timeout"`
	} `yaml:"cassandra"`

	Console struct {
		Port              int    `yaml:"port"`
		TemplateDirectory string `yaml:"template_directory"`
		PublicFolder      string `yaml:"public_folder"`
	} `yaml:"console"`
}

// SetDefaultConfig resets the Config object to default values, regardless of
// what was set by any configuration file.
func SetDefaultConfig() {
	// NOTE: go-yaml has a bug where it does not overwrite sequence values
	// (i.e. lists), it appends to them.
	// See https://github.com/go-yaml/yaml/issues/48
	// Until this is fixed, for any sequence value, in readConfig we have to
	// nil it and then fill in the default value if yaml.Unmarshal did not
	// fill anything in.

	Config.UserAgent = "feeddetect (https://github.com/webos-goodies/feed-detector)"
	Config.FetchTimeout = "15s"
	Config.MaxBodyBytes = 10 * 1024 * 1024 // 10MB
	Config.ExtraDenyPattern = ""
	Config.StripArticleBody = false

	Config.Batch.NumSimultaneousFetchers = 10
	Config.Batch.ResultCacheSize = 2000

	Config.Cassandra.Hosts = []string{"localhost"}
	Config.Cassandra.Keyspace = "feeddetect"
	Config.Cassandra.ReplicationFactor = 3
	Config.Cassandra.Timeout = "2s"

	Config.Console.Port = 3000
	Config.Console.TemplateDirectory = "console/templates"
	Config.Console.PublicFolder = "console/public"
}

// ReadConfigFile sets a new path to find the feeddetect yaml config file and
// forces a reload of the config.
func ReadConfigFile(path string) error {
	ConfigName = path
	return readConfig()
}

func assertConfigInvariants() error {
	var errs []string

	if Config.Batch.NumSimultaneousFetchers < 1 {
		errs = append(errs, "Batch.NumSimultaneousFetchers must be greater than 0")
	}
	if Config.Batch.ResultCacheSize < 1 {
		errs = append(errs, "Batch.ResultCacheSize must be greater than 0")
	}

	if _, err := time.ParseDuration(Config.FetchTimeout); err != nil {
		errs = append(errs, fmt.Sprintf("FetchTimeout failed to parse: %v", err))
	}
	if _, err := time.ParseDuration(Config.Cassandra.Timeout); err != nil {
		errs = append(errs, fmt.Sprintf("Cassandra.Timeout failed to parse: %v", err))
	}

	if Config.ExtraDenyPattern != "" {
		if _, err := regexp.Compile(Config.ExtraDenyPattern); err != nil {
			errs = append(errs, fmt.Sprintf("ExtraDenyPattern failed to compile: %v", err))
		}
	}

	if len(errs) > 0 {
		em := ""
		for _, err := range errs {
			log4go.Error("Config Error: %v", err)
			em += "\t"
			em += err
			em += "\n"
		}
		return fmt.Errorf("Config Error:\n%v\n", em)
	}

	return nil
}

func readConfig() error {
	SetDefaultConfig()

	// See NOTE in SetDefaultConfig regarding sequence values.
	Config.Cassandra.Hosts = []string{}

	data, err := ioutil.ReadFile(ConfigName)
	if err != nil {
		return fmt.Errorf("Failed to read config file (%v): %v", ConfigName, err)
	}
	err = yaml.Unmarshal(data, &Config)
	if err != nil {
		return fmt.Errorf("Failed to unmarshal yaml from config file (%v): %v", ConfigName, err)
	}

	// See NOTE in SetDefaultConfig regarding sequence values.
	if len(Config.Cassandra.Hosts) == 0 {
		Config.Cassandra.Hosts = []string{"localhost"}
	}

	if err := assertConfigInvariants(); err != nil {
		return err
	}

	if Config.ExtraDenyPattern != "" {
		extraDenyMatch = regexp.MustCompile(Config.ExtraDenyPattern)
	} else {
		extraDenyMatch = nil
	}

	log4go.Info("Loaded config file %v", ConfigName)
	return nil
}
