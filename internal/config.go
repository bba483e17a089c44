package internal

import (
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/quizbook/internal/merge"
	"github.com/starford/quizbook/internal/models"
	"github.com/starford/quizbook/internal/view"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Content ContentConfig     `yaml:"content"`
	Views   []view.Config     `yaml:"views"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Auth    AuthConfig        `yaml:"auth"`
	AI      AIConfig          `yaml:"ai"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Content.Validate(); err != nil {
		return fmt.Errorf("content: %w", err)
	}
	if err := validateViews(c.Views); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	if err := c.AI.Validate(); err != nil {
		return fmt.Errorf("ai: %w", err)
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig locates the question tree and the generated document, and
// carries the link bases used while rendering.
type ContentConfig struct {
	Root           string `yaml:"root"`
	QuestionsDir   string `yaml:"questions_dir"`
	ListFile       string `yaml:"list_file"`
	DocumentPath   string `yaml:"document_path"`
	RankFile       string `yaml:"rank_file"`
	Locale         string `yaml:"locale"`
	BaseURL        string `yaml:"base_url"`
	DetailURLBase  string `yaml:"detail_url_base"`
	DetailSiteName string `yaml:"detail_site_name"`
	EditURLBase    string `yaml:"edit_url_base"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.QuestionsDir, validation.Required),
		validation.Field(&c.DocumentPath, validation.Required),
		validation.Field(&c.Locale, validation.Required),
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.DetailURLBase, validation.Required),
		validation.Field(&c.EditURLBase, validation.Required),
	)
}

func validateViews(views []view.Config) error {
	if len(views) == 0 {
		return fmt.Errorf("views: at least one view is required")
	}
	seen := make(map[string]struct{}, len(views))
	for i := range views {
		v := &views[i]
		if err := validation.ValidateStruct(v,
			validation.Field(&v.Name, validation.Required),
			validation.Field(&v.Mode, validation.Required, validation.In(view.ModeFull, view.ModeBullets)),
		); err != nil {
			return fmt.Errorf("views[%d]: %w", i, err)
		}
		if _, dup := seen[v.Name]; dup {
			return fmt.Errorf("views[%d]: duplicate name %q", i, v.Name)
		}
		seen[v.Name] = struct{}{}
		if v.Body.Start == "" || v.Body.End == "" {
			return fmt.Errorf("view %s: body markers are required", v.Name)
		}
		if v.Mode == view.ModeFull && (v.TOC.Start == "" || v.TOC.End == "") {
			return fmt.Errorf("view %s: toc markers are required in %s mode", v.Name, view.ModeFull)
		}
	}
	return nil
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AIConfig configures the answer command's chat completion backend.
// The key is usually supplied as ${OPENAI_API_KEY} and is only checked when
// the answer command runs.
type AIConfig struct {
	Endpoint    string `yaml:"endpoint"`
	Model       string `yaml:"model"`
	APIKey      string `yaml:"api_key"`
	PromptURL   string `yaml:"prompt_url"`
	PromptFile  string `yaml:"prompt_file"`
	MaxRetries  int    `yaml:"max_retries"`
	Placeholder string `yaml:"placeholder"`
}

// Validate validates the AI configuration.
func (c *AIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.MaxRetries, validation.Min(0), validation.Max(10)),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): the API is open, suitable for local previews.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Content: ContentConfig{
			Root:           ".",
			QuestionsDir:   "questions",
			ListFile:       "data/questions.json",
			DocumentPath:   "README.md",
			Locale:         "en-US",
			BaseURL:        "https://www.greatfrontend.com",
			DetailURLBase:  "https://www.greatfrontend.com/questions/quiz",
			DetailSiteName: "GreatFrontEnd",
			EditURLBase:    "https://github.com/yangshun/top-javascript-interview-questions/blob/main",
		},
		Views: DefaultViews(),
		SQLite: SQLiteConfig{
			Path: "./quizbook.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		AI: AIConfig{
			Model:       "gpt-4o",
			MaxRetries:  5,
			Placeholder: "TODO_REPLACE_BODY",
		},
	}
}

// DefaultViews returns the five sections of the README: the featured
// questions, the full catalog and one link list per level.
func DefaultViews() []view.Config {
	full := func(name, section string, filter view.Filter) view.Config {
		return view.Config{
			Name:           name,
			Mode:           view.ModeFull,
			Filter:         filter,
			SortByRanking:  true,
			ShowDetailLink: true,
			TOCAnchorID:    "table-of-contents",
			TOC:            markers("TABLE_OF_CONTENTS:" + section),
			Body:           markers("QUESTIONS:" + section),
		}
	}
	bullets := func(name string, level models.Level) view.Config {
		return view.Config{
			Name:   name,
			Mode:   view.ModeBullets,
			Filter: view.Filter{Level: level},
			Body:   markers("QUESTIONS:" + strings.ToUpper(string(level))),
		}
	}
	return []view.Config{
		full("top", "TOP", view.Filter{Featured: true}),
		full("all", "ALL", view.Filter{}),
		bullets("basic", models.LevelBasic),
		bullets("intermediate", models.LevelIntermediate),
		bullets("advanced", models.LevelAdvanced),
	}
}

func markers(prefix string) merge.Markers {
	return merge.Markers{Start: prefix + ":START", End: prefix + ":END"}
}
