package storage

// Mediums accepted by Config.Medium.
const (
	MediumMemory = "memory"
	MediumCookie = "cookie"
	MediumSQL    = "sql"
	MediumRedis  = "redis"
	MediumObject = "object"
)

// Config selects and configures the medium holding persisted snapshots.
type Config struct {
	// Medium is one of memory, cookie, sql, redis, object.
	Medium string `mapstructure:"medium" default:"memory"`
	// Object configures the object medium.
	Object ObjectConfig `mapstructure:"object"`
}

// ObjectConfig holds configuration for the S3/MinIO object medium.
type ObjectConfig struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket holding snapshots.
	Bucket string `mapstructure:"bucket" default:"wallet-state"`
	// Prefix is prepended to every object name.
	Prefix string `mapstructure:"prefix" default:"snapshots"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// RedisConfig holds configuration for the Redis medium.
type RedisConfig struct {
	// Addrs lists the Redis nodes.
	Addrs []string `mapstructure:"addrs" default:"localhost:6379"`
	// Password authenticates against Redis.
	Password string `mapstructure:"password" default:""`
	// DB selects the database on single-node deployments.
	DB int `mapstructure:"db" default:"0"`
	// Cluster uses a cluster client when several addresses are given.
	Cluster bool `mapstructure:"cluster" default:"false"`
	// Prefix namespaces the stored keys.
	Prefix string `mapstructure:"prefix" default:"wallet-state"`
	// Channel carries change notifications between instances.
	Channel string `mapstructure:"channel" default:"wallet-state:events"`
}
