package config

// Project is the benchhist YAML file kept next to the benchmarked code.
type Project struct {
	RepoURL    string        `yaml:"repo_url"`
	Store      StoreConfig   `yaml:"store"`
	Alert      AlertConfig   `yaml:"alert"`
	Commit     CommitConfig  `yaml:"commit"`
	Benchmarks []Benchmark   `yaml:"benchmarks"`
	Publish    PublishConfig `yaml:"publish"`
}

type StoreConfig struct {
	Type       string   `yaml:"type"`
	DataFile   string   `yaml:"data_file"`
	Watch      bool     `yaml:"watch"`
	MaxItems   int      `yaml:"max_items"`
	SQLitePath string   `yaml:"sqlite_path,omitempty"`
	PgConn     string   `yaml:"pg_connection,omitempty"`
	PgMigrate  bool     `yaml:"pg_migrate,omitempty"`
	ES         ESConfig `yaml:"es,omitempty"`
}

type ESConfig struct {
	Addresses []string `yaml:"addresses"`
	Index     string   `yaml:"index"`
	Username  string   `yaml:"username,omitempty"`
	Password  string   `yaml:"password,omitempty"`
}

type AlertConfig struct {
	Threshold   string `yaml:"threshold"`
	FailOnAlert bool   `yaml:"fail_on_alert"`
}

type CommitConfig struct {
	Resolver   string `yaml:"resolver"`
	Repository string `yaml:"repository"`
	BaseURL    string `yaml:"base_url,omitempty"`
}

// Benchmark binds a suite name to the tool and output files that feed it.
type Benchmark struct {
	Suite  string   `yaml:"suite"`
	Tool   string   `yaml:"tool"`
	Output []string `yaml:"output"`
}

type PublishConfig struct {
	To  string   `yaml:"to"`
	Dir string   `yaml:"dir"`
	S3  S3Config `yaml:"s3,omitempty"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint,omitempty"`
}
