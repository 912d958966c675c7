package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
)

type config struct {
	backend   string
	root      string
	bucket    string
	prefix    string
	endpoint  string
	region    string
	accessKey string
	secretKey string
	secure    bool
	compress  string

	bufferSize int
	async      bool
	workers    int64
	ioLimit    int64
	memLimit   int64

	logLevel slog.Level
	logJSON  bool
}

// envDefaults supplies flag defaults from HLFS_* variables.
type envDefaults func(string) string

func (e envDefaults) str(key, def string) string {
	if v := e(key); v != "" {
		return v
	}
	return def
}

func (e envDefaults) int64(key string, def int64) int64 {
	if v, err := strconv.ParseInt(e(key), 10, 64); err == nil {
		return v
	}
	return def
}

func (e envDefaults) bool(key string, def bool) bool {
	if v, err := strconv.ParseBool(e(key)); err == nil {
		return v
	}
	return def
}

func parseConfig(args []string, getenv func(string) string, stderr io.Writer) (config, []string, error) {
	env := envDefaults(getenv)
	var (
		cfg      config
		logLevel string
	)

	fs := flag.NewFlagSet("hlfs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: hlfs [flags] stat|cat|append PATH")
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.backend, "backend", env.str("HLFS_BACKEND", "unix"), "backend: unix, os, local, minio or s3")
	fs.StringVar(&cfg.root, "root", env.str("HLFS_ROOT", "."), "root directory for the os and local backends")
	fs.StringVar(&cfg.bucket, "bucket", env.str("HLFS_BUCKET", ""), "bucket for the minio and s3 backends")
	fs.StringVar(&cfg.prefix, "prefix", env.str("HLFS_PREFIX", ""), "key prefix for the minio and s3 backends")
	fs.StringVar(&cfg.endpoint, "endpoint", env.str("HLFS_ENDPOINT", ""), "object store endpoint (required for minio)")
	fs.StringVar(&cfg.region, "region", env.str("HLFS_REGION", ""), "region for the s3 backend")
	fs.StringVar(&cfg.accessKey, "access-key", env.str("HLFS_ACCESS_KEY", ""), "access key for the minio backend")
	fs.StringVar(&cfg.secretKey, "secret-key", env.str("HLFS_SECRET_KEY", ""), "secret key for the minio backend")
	fs.BoolVar(&cfg.secure, "secure", env.bool("HLFS_SECURE", true), "use TLS for the minio backend")
	fs.StringVar(&cfg.compress, "compress", env.str("HLFS_COMPRESS", "none"), "blob compression: none, lz4 or zstd")

	fs.IntVar(&cfg.bufferSize, "buffer-size", int(env.int64("HLFS_BUFFER_SIZE", 64*1024)), "transfer buffer size in bytes")
	fs.BoolVar(&cfg.async, "async", env.bool("HLFS_ASYNC", false), "use asynchronous transfers")
	fs.Int64Var(&cfg.workers, "workers", env.int64("HLFS_WORKERS", 4), "maximum concurrent async transfers")
	fs.Int64Var(&cfg.ioLimit, "io-limit", env.int64("HLFS_IO_LIMIT", 0), "async throughput limit in bytes/s (0 = unlimited)")
	fs.Int64Var(&cfg.memLimit, "mem-limit", env.int64("HLFS_MEM_LIMIT", 0), "limit for pending blob writes in bytes (0 = unlimited)")

	fs.StringVar(&logLevel, "log-level", env.str("HLFS_LOG_LEVEL", "warn"), "log level: debug, info, warn or error")
	fs.BoolVar(&cfg.logJSON, "log-json", env.bool("HLFS_LOG_JSON", false), "log as JSON")

	if err := fs.Parse(args); err != nil {
		return config{}, nil, err
	}
	if err := cfg.logLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return config{}, nil, fmt.Errorf("invalid -log-level: %w", err)
	}
	if cfg.bufferSize <= 0 {
		return config{}, nil, fmt.Errorf("invalid -buffer-size %d", cfg.bufferSize)
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return config{}, nil, fmt.Errorf("expected a command and a path, got %d arguments", fs.NArg())
	}
	return cfg, fs.Args(), nil
}
