package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
	Artifact *artifactConfig
	Scoring  *scoringConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"intake"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string        `envconfig:"INTAKE_ADDRESS" default:":3443"`
	BaseUrl         string        `envconfig:"INTAKE_BASE_URL" default:"https://localhost:3443"`
	LogLevel        string        `envconfig:"INTAKE_LOG_LEVEL" default:"info"`
	MigrationFolder string        `envconfig:"INTAKE_MIGRATIONS_FOLDER" default:""`
	StageTimeout    time.Duration `envconfig:"INTAKE_STAGE_TIMEOUT" default:"30s"`
	ScoringWorkers  int           `envconfig:"INTAKE_SCORING_WORKERS" default:"2"`
}

type artifactConfig struct {
	Backend       string        `envconfig:"INTAKE_ARTIFACT_BACKEND" default:"fs"`
	RootDir       string        `envconfig:"INTAKE_ARTIFACT_DIR" default:"uploads/resumes"`
	SweepInterval time.Duration `envconfig:"INTAKE_ARTIFACT_SWEEP_INTERVAL" default:"1h"`
	S3Endpoint    string        `envconfig:"INTAKE_ARTIFACT_S3_ENDPOINT" default:""`
	S3Bucket      string        `envconfig:"INTAKE_ARTIFACT_S3_BUCKET" default:"resumes"`
	S3AccessKey   string        `envconfig:"INTAKE_ARTIFACT_S3_ACCESS_KEY" default:""`
	S3SecretKey   string        `envconfig:"INTAKE_ARTIFACT_S3_SECRET_KEY" default:""`
	S3UseSSL      bool          `envconfig:"INTAKE_ARTIFACT_S3_USE_SSL" default:"false"`
}

type scoringConfig struct {
	HighPriorityWeight float64 `envconfig:"INTAKE_SCORE_WEIGHT_HIGH" default:"0.7"`
	NormalWeight       float64 `envconfig:"INTAKE_SCORE_WEIGHT_NORMAL" default:"0.3"`
	ShortlistThreshold float64 `envconfig:"INTAKE_SCORE_SHORTLIST" default:"0.7"`
	ReviewThreshold    float64 `envconfig:"INTAKE_SCORE_REVIEW" default:"0.4"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a config populated with the declared defaults,
// ignoring the environment. The test suites start from it and override
// what they need.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type:     "pgsql",
			Hostname: "localhost",
			Port:     "5432",
			Name:     "intake",
			User:     "admin",
			Password: "adminpass",
		},
		Service: &svcConfig{
			Address:        ":3443",
			BaseUrl:        "https://localhost:3443",
			LogLevel:       "info",
			StageTimeout:   30 * time.Second,
			ScoringWorkers: 2,
		},
		Artifact: &artifactConfig{
			Backend:       "fs",
			RootDir:       "uploads/resumes",
			SweepInterval: time.Hour,
		},
		Scoring: &scoringConfig{
			HighPriorityWeight: 0.7,
			NormalWeight:       0.3,
			ShortlistThreshold: 0.7,
			ReviewThreshold:    0.4,
		},
	}
}
