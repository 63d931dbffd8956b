package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "SESSION_CONFIG_FILE"

type session struct {
	SnapshotPath        string `mapstructure:"snapshot_path"`
	CompareLimit        int    `mapstructure:"compare_limit"`
	RecentlyViewedLimit int    `mapstructure:"recently_viewed_limit"`
}

type topics struct {
	CatalogProducts string `mapstructure:"catalog_products"`
	ShopperEvents   string `mapstructure:"shopper_events"`
}

type consumers struct {
	CatalogGroup string `mapstructure:"catalog_group"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	CatalogDB      string     `mapstructure:"catalog_db"`
	Session        session    `mapstructure:"session"`
	Broker         broker     `mapstructure:"broker"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	CatalogDB=%q

	SessionConfig:
	SnapshotPath=%q
	CompareLimit=%d
	RecentlyViewedLimit=%d

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		CatalogProducts=%q
		ShopperEvents=%q
	Consumers:
		CatalogGroup=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.CatalogDB,
		c.Session.SnapshotPath,
		c.Session.CompareLimit,
		c.Session.RecentlyViewedLimit,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.CatalogProducts,
		c.Broker.Topics.ShopperEvents,
		c.Broker.Consumers.CatalogGroup,
	)
}
