package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server needs to boot: the listen port, CORS
// allow-list, per-source upstream base URLs and deadlines, and the
// translation/AI proxy endpoints. There is no datastore and no credential
// material here — the server is stateless apart from the two in-process
// corpora loaded at startup.
type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	PubMedBaseURL      string `mapstructure:"PUBMED_BASE_URL"`
	JStageBaseURL      string `mapstructure:"JSTAGE_BASE_URL"`
	SemanticScholarURL string `mapstructure:"SEMANTIC_SCHOLAR_BASE_URL"`
	OpenAlexBaseURL    string `mapstructure:"OPENALEX_BASE_URL"`
	CiNiiBaseURL       string `mapstructure:"CINII_BASE_URL"`
	EuropePMCBaseURL   string `mapstructure:"EUROPE_PMC_BASE_URL"`

	TranslateEndpoint string `mapstructure:"TRANSLATE_ENDPOINT"`
	AIEndpoint        string `mapstructure:"AI_ENDPOINT"`
	MeSHBaseURL       string `mapstructure:"MESH_BASE_URL"`

	SourceTimeout    time.Duration `mapstructure:"-"`
	TranslateTimeout time.Duration `mapstructure:"-"`
}

// SourceTimeoutSeconds and TranslateTimeoutSeconds are the fixed deadlines
// spec.md §4.B and §4.C assign to the translation call and every source
// adapter respectively. They are not independently configurable: the
// contract binds the exact number, not an operator-tunable default.
const (
	SourceTimeoutSeconds    = 8
	TranslateTimeoutSeconds = 5
)

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173,null")

	v.SetDefault("PUBMED_BASE_URL", "https://eutils.ncbi.nlm.nih.gov/entrez/eutils")
	v.SetDefault("JSTAGE_BASE_URL", "https://api.jstage.jst.go.jp/searchapi/do")
	v.SetDefault("SEMANTIC_SCHOLAR_BASE_URL", "https://api.semanticscholar.org/graph/v1")
	v.SetDefault("OPENALEX_BASE_URL", "https://api.openalex.org")
	v.SetDefault("CINII_BASE_URL", "https://cir.nii.ac.jp/opensearch")
	v.SetDefault("EUROPE_PMC_BASE_URL", "https://www.ebi.ac.uk/europepmc/webservices/rest")

	v.SetDefault("TRANSLATE_ENDPOINT", "")
	v.SetDefault("AI_ENDPOINT", "")
	v.SetDefault("MESH_BASE_URL", "")

	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("PUBMED_BASE_URL")
	v.BindEnv("JSTAGE_BASE_URL")
	v.BindEnv("SEMANTIC_SCHOLAR_BASE_URL")
	v.BindEnv("OPENALEX_BASE_URL")
	v.BindEnv("CINII_BASE_URL")
	v.BindEnv("EUROPE_PMC_BASE_URL")
	v.BindEnv("TRANSLATE_ENDPOINT")
	v.BindEnv("AI_ENDPOINT")
	v.BindEnv("MESH_BASE_URL")

	// Try reading .env file, but don't fail if missing.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.CORSOrigins) == 0 {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	cfg.SourceTimeout = SourceTimeoutSeconds * time.Second
	cfg.TranslateTimeout = TranslateTimeoutSeconds * time.Second

	if cfg.IsDev() {
		log.Println("WARNING: ============================================================")
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: CORS allow-list defaults to localhost origins plus the null origin.")
		log.Println("WARNING: ============================================================")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run. Translation and AI
// proxying are optional contract-only surfaces per spec.md §1: an empty
// endpoint means translate/AI calls degrade to their documented absent/502
// fallback rather than failing startup.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one allowed origin")
	}
	return nil
}
