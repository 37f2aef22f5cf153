// 包 config：集中读取运行参数；优先级 默认值 < YAML 文件 < 环境变量 < 命令行
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTopologyURL  = "https://cdn.freecodecamp.org/testable-projects-fcc/data/choropleth_map/counties.json"
	DefaultEducationURL = "https://cdn.freecodecamp.org/testable-projects-fcc/data/choropleth_map/for_user_education.json"
)

type Config struct {
	Log     LogConfig     `yaml:"log"`
	Sources SourcesConfig `yaml:"sources"`
	Output  OutputConfig  `yaml:"output"`
	Watch   WatchConfig   `yaml:"watch"`
	Serve   ServeConfig   `yaml:"serve"`
	Redis   RedisConfig   `yaml:"redis"`
	S3      S3Config      `yaml:"s3"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SourcesConfig：两个数据集的地址与单次请求超时
type SourcesConfig struct {
	TopologyURL  string `yaml:"topology_url"`
	EducationURL string `yaml:"education_url"`
	TimeoutSec   int    `yaml:"timeout_s"`
	CacheTTLSec  int    `yaml:"cache_ttl_s"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type WatchConfig struct {
	IntervalSec int `yaml:"interval_s"`
}

// ServeConfig：RateLimitQPS 为 0 表示不限流
type ServeConfig struct {
	Addr         string `yaml:"addr"`
	RateLimitQPS int    `yaml:"rate_limit_qps"`
}

// RedisConfig：数据集缓存；Host 为空表示禁用
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// S3Config：可选发布目标；Bucket 为空表示只写本地目录
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	Prefix          string `yaml:"prefix"`
	PathStyle       bool   `yaml:"path_style"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Sources: SourcesConfig{
			TopologyURL:  DefaultTopologyURL,
			EducationURL: DefaultEducationURL,
			TimeoutSec:   15,
			CacheTTLSec:  86400,
		},
		Output: OutputConfig{Dir: filepath.Join("data", "out")},
		Watch:  WatchConfig{IntervalSec: 3600},
		Serve:  ServeConfig{Addr: ":8080"},
		Redis:  RedisConfig{Port: "6379"},
		S3:     S3Config{Region: "us-east-1"},
	}
}

// Load：按优先级合并配置
// 约束：.env 文件缺失不视为错误；path 为空时读取 CHOROPLETH_CONFIG，仍为空则跳过 YAML
func Load(path string) (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	cfg := Default()
	if path == "" {
		path = os.Getenv("CHOROPLETH_CONFIG")
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	setStr(&c.Log.Level, "LOG_LEVEL")
	setStr(&c.Log.Format, "LOG_FORMAT")
	setStr(&c.Sources.TopologyURL, "TOPOLOGY_URL")
	setStr(&c.Sources.EducationURL, "EDUCATION_URL")
	setPositiveInt(&c.Sources.TimeoutSec, "FETCH_TIMEOUT_S")
	setPositiveInt(&c.Sources.CacheTTLSec, "DATASET_CACHE_TTL_S")
	setStr(&c.Output.Dir, "OUT_DIR")
	setPositiveInt(&c.Watch.IntervalSec, "WATCH_INTERVAL_S")
	setStr(&c.Serve.Addr, "ADDR")
	setPositiveInt(&c.Serve.RateLimitQPS, "RATE_LIMIT_QPS")
	setStr(&c.Redis.Host, "REDIS_HOST")
	setStr(&c.Redis.Port, "REDIS_PORT")
	setStr(&c.Redis.Password, "REDIS_PASS")
	if v := os.Getenv("REDIS_DB"); v != "" {
		// 解析失败保持原值
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Redis.DB = n
		}
	}
	setStr(&c.S3.Bucket, "S3_BUCKET")
	setStr(&c.S3.Region, "S3_REGION")
	setStr(&c.S3.Endpoint, "S3_ENDPOINT")
	setStr(&c.S3.Prefix, "S3_PREFIX")
	if v := os.Getenv("S3_PATH_STYLE"); v != "" {
		c.S3.PathStyle = strings.EqualFold(v, "true")
	}
	setStr(&c.S3.AccessKeyID, "AWS_ACCESS_KEY_ID")
	setStr(&c.S3.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")
}

func (c *Config) Validate() error {
	if c.Sources.TopologyURL == "" || c.Sources.EducationURL == "" {
		return fmt.Errorf("config: both dataset urls are required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("config: output dir is required")
	}
	if c.Sources.TimeoutSec <= 0 {
		return fmt.Errorf("config: fetch timeout must be positive, got %d", c.Sources.TimeoutSec)
	}
	return nil
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Sources.TimeoutSec) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Sources.CacheTTLSec) * time.Second
}

func (c *Config) WatchInterval() time.Duration {
	if c.Watch.IntervalSec <= 0 {
		return time.Hour
	}
	return time.Duration(c.Watch.IntervalSec) * time.Second
}

// RedisAddr：未配置主机时返回空串
func (c *Config) RedisAddr() string {
	if c.Redis.Host == "" {
		return ""
	}
	port := c.Redis.Port
	if port == "" {
		port = "6379"
	}
	return c.Redis.Host + ":" + port
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setPositiveInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = n
		}
	}
}
