package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// pluginNamespace keeps SEO_PLUGIN a single path segment of the REST URL.
var pluginNamespace = regexp.MustCompile(`^[a-z0-9-]+$`)

type Config struct {
	CMSOrigin         string
	CMSGraphQLPath    string
	SEOPlugin         string
	SiteURL           string
	Port              string
	ContentRevalidate time.Duration
	StaticRevalidate  time.Duration
	ContactWebhookURL string
	ContactEmail      string
	ProjectID         string
	MaxStoredLeads    int
	ContactRateLimit  int
	CorsOrigins       []string
	LogLevel          slog.Level
}

// GraphQLEndpoint is the absolute URL of the CMS GraphQL endpoint.
func (c *Config) GraphQLEndpoint() string {
	return c.CMSOrigin + c.CMSGraphQLPath
}

func Load() (*Config, error) {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		envPath = ".env"
	}
	if err := godotenv.Load(envPath); err != nil {
		slog.Debug("Skipping .env ...", "path", envPath, "error", err)
	}

	cmsOrigin := strings.TrimRight(os.Getenv("CMS_ORIGIN"), "/")
	if cmsOrigin == "" {
		return nil, fmt.Errorf("CMS_ORIGIN environment variable is required but not set")
	}
	if err := validateOrigin(cmsOrigin); err != nil {
		return nil, fmt.Errorf("invalid CMS_ORIGIN %q: %w", cmsOrigin, err)
	}

	graphQLPath := os.Getenv("CMS_GRAPHQL_PATH")
	if graphQLPath == "" {
		graphQLPath = "/graphql"
	}
	if !strings.HasPrefix(graphQLPath, "/") {
		graphQLPath = "/" + graphQLPath
	}

	seoPlugin := os.Getenv("SEO_PLUGIN")
	if seoPlugin == "" {
		seoPlugin = "rankmath"
	}
	if !pluginNamespace.MatchString(seoPlugin) {
		return nil, fmt.Errorf("invalid SEO_PLUGIN %q: must match %s", seoPlugin, pluginNamespace)
	}

	siteURL := strings.TrimRight(os.Getenv("SITE_URL"), "/")
	if siteURL == "" {
		siteURL = "https://www.onlinelabs.nl"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		slog.Info("Defaulting to port", "port", port)
	}
	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
	}

	contentRevalidate, err := durationEnv("CONTENT_REVALIDATE", "1h")
	if err != nil {
		return nil, err
	}
	staticRevalidate, err := durationEnv("STATIC_REVALIDATE", "24h")
	if err != nil {
		return nil, err
	}

	contactWebhookURL := os.Getenv("CONTACT_WEBHOOK_URL")
	if contactWebhookURL == "" {
		slog.Warn("CONTACT_WEBHOOK_URL not set, contact submissions will not be relayed")
	}

	contactEmail := os.Getenv("CONTACT_EMAIL")
	if contactEmail == "" {
		contactEmail = "info@onlinelabs.nl"
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		slog.Info("GOOGLE_CLOUD_PROJECT not set, leads will not be persisted")
	}

	maxStoredLeads, err := intEnv("MAX_STORED_LEADS", 1000)
	if err != nil {
		return nil, err
	}
	contactRateLimit, err := intEnv("CONTACT_RATE_LIMIT", 5)
	if err != nil {
		return nil, err
	}

	var origins []string
	for _, origin := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	logLevel := slog.LevelInfo
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := logLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
	}

	return &Config{
		CMSOrigin:         cmsOrigin,
		CMSGraphQLPath:    graphQLPath,
		SEOPlugin:         seoPlugin,
		SiteURL:           siteURL,
		Port:              port,
		ContentRevalidate: contentRevalidate,
		StaticRevalidate:  staticRevalidate,
		ContactWebhookURL: contactWebhookURL,
		ContactEmail:      contactEmail,
		ProjectID:         projectID,
		MaxStoredLeads:    maxStoredLeads,
		ContactRateLimit:  contactRateLimit,
		CorsOrigins:       origins,
		LogLevel:          logLevel,
	}, nil
}

func durationEnv(key, fallback string) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		v = fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if parsed < 1 {
		return 0, fmt.Errorf("invalid %s %q: must be at least 1", key, v)
	}
	return parsed, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("port must be a number")
	}
	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}

func validateOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme %q not allowed", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
