package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/dmitrijs2005/notesum/internal/config"
	"github.com/dmitrijs2005/notesum/internal/dbx"
	"github.com/dmitrijs2005/notesum/internal/extract"
	"github.com/dmitrijs2005/notesum/internal/gemini"
	"github.com/dmitrijs2005/notesum/internal/logging"
	"github.com/dmitrijs2005/notesum/internal/session"
	"github.com/dmitrijs2005/notesum/internal/speech"
	"github.com/dmitrijs2005/notesum/internal/summarize"
	"github.com/dmitrijs2005/notesum/internal/users"
)

type userStore interface {
	Register(ctx context.Context, userName, password string) (bool, error)
	Authenticate(ctx context.Context, userName, password string) (bool, error)
}

type documentExtractor interface {
	Extract(ctx context.Context, path string) extract.Result
}

type summaryService interface {
	summarize.Summarizer
	SetAPIKey(key string)
	HasAPIKey() bool
}

type App struct {
	config     *config.Config
	users      userStore
	extractor  documentExtractor
	summarizer summaryService
	recognizer speech.Recognizer
	session    *session.Session
	log        logging.Logger
	baseLog    logging.Logger
	reader     *bufio.Reader
	out        io.Writer
	db         *sql.DB
}

// newRecognizer builds the speech recognizer for an API key.
var newRecognizer = func(cfg *config.Config, apiKey string, log logging.Logger) speech.Recognizer {
	gen := gemini.NewClient(gemini.Config{
		APIKey:  apiKey,
		Model:   cfg.Model,
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
	})
	return speech.NewGeminiRecognizer(gen, cfg.SpeechTimeout, log)
}

// NewApp opens the user database (creating the users table when needed) and
// builds the services behind the REPL.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := dbx.Open(ctx, cfg.DatabasePath, dbx.WithMkdirAll())
	if err != nil {
		log.Error(ctx, "error initializing database", "path", cfg.DatabasePath, "error", err)
		return nil, err
	}

	s := session.New()
	sessLog := log.With("session", s.ID())

	sum := summarize.New(summarize.Config{
		APIKey:          cfg.APIKey,
		Model:           cfg.Model,
		BaseURL:         cfg.APIBaseURL,
		MaxInputLength:  cfg.MaxInputLength,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Temperature:     cfg.Temperature,
		Timeout:         cfg.RequestTimeout,
	}, sessLog)

	return &App{
		config:     cfg,
		users:      users.NewService(users.NewSQLiteRepository(db), sessLog),
		extractor:  extract.New(extract.Config{MaxFileSize: cfg.MaxFileSize, Logger: sessLog}),
		summarizer: sum,
		recognizer: newRecognizer(cfg, cfg.APIKey, sessLog),
		session:    s,
		log:        sessLog,
		baseLog:    log,
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		db:         db,
	}, nil
}

// Run blocks in the REPL until the user exits, then closes the database.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println("Welcome to notesum (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.LoggedIn()
}

func (a *App) status() string {
	if !a.session.LoggedIn() {
		return ""
	}
	return "(" + a.session.UserName() + ")"
}

// relog re-attaches the current session id to the logger.
func (a *App) relog() {
	if a.baseLog != nil {
		a.log = a.baseLog.With("session", a.session.ID())
	}
}
