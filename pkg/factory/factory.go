package factory

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"socialhub/internal/config"
	"socialhub/internal/domain"
	"socialhub/internal/mailer"
	"socialhub/internal/repository"
	"socialhub/internal/service"
	"socialhub/pkg/logger"
)

type Factory interface {
	GetLogger() logger.Logger
	GetConfig() *config.Config
	GetDB() *sql.DB
	GetMailer() mailer.Mailer

	GetUserRepository() domain.UserRepository
	GetPostRepository() domain.PostRepository
	GetAuditLogRepository() domain.AuditLogRepository

	GetUserService() domain.UserService
	GetAuthService() domain.AuthService
	GetPasswordResetService() domain.PasswordResetService
	GetPostService() domain.PostService
	GetAuditLogService() domain.AuditLogService
}

type AppFactory struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB
	mailer mailer.Mailer

	userRepository     domain.UserRepository
	postRepository     domain.PostRepository
	auditLogRepository domain.AuditLogRepository

	userService          domain.UserService
	authService          domain.AuthService
	passwordResetService domain.PasswordResetService
	postService          domain.PostService
	auditLogService      domain.AuditLogService
}

func NewFactory() (Factory, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.LogLevel(cfg.LogLevel), nil)

	db, err := sql.Open("sqlite3", cfg.Database.Path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	factory := &AppFactory{
		config: cfg,
		logger: log,
		db:     db,
		mailer: mailer.NewSMTPMailer(cfg.SMTP, log),
	}

	factory.initRepositories()
	factory.initServices()

	return factory, nil
}

func (f *AppFactory) initRepositories() {
	f.userRepository = repository.NewUserRepository(f.db, f.logger)
	f.postRepository = repository.NewPostRepository(f.db, f.logger)
	f.auditLogRepository = repository.NewAuditLogRepository(f.db, f.logger)
}

func (f *AppFactory) initServices() {
	f.auditLogService = service.NewAuditLogService(f.auditLogRepository, f.logger)

	f.userService = service.NewUserService(f.userRepository, f.auditLogService, f.logger)

	f.authService = service.NewAuthService(
		f.userService,
		[]byte(f.config.Auth.JWTSecret),
		f.config.Auth.TokenValidity,
		f.logger,
	)

	f.passwordResetService = service.NewPasswordResetService(
		f.userRepository,
		f.mailer,
		f.auditLogService,
		f.logger,
		f.config.BaseURL,
		f.config.Auth.ResetValidity,
	)

	f.postService = service.NewPostService(f.postRepository, f.userRepository, f.auditLogService, f.logger)
}

func (f *AppFactory) GetLogger() logger.Logger {
	return f.logger
}

func (f *AppFactory) GetConfig() *config.Config {
	return f.config
}

func (f *AppFactory) GetDB() *sql.DB {
	return f.db
}

func (f *AppFactory) GetMailer() mailer.Mailer {
	return f.mailer
}

func (f *AppFactory) GetUserRepository() domain.UserRepository {
	return f.userRepository
}

func (f *AppFactory) GetPostRepository() domain.PostRepository {
	return f.postRepository
}

func (f *AppFactory) GetAuditLogRepository() domain.AuditLogRepository {
	return f.auditLogRepository
}

func (f *AppFactory) GetUserService() domain.UserService {
	return f.userService
}

func (f *AppFactory) GetAuthService() domain.AuthService {
	return f.authService
}

func (f *AppFactory) GetPasswordResetService() domain.PasswordResetService {
	return f.passwordResetService
}

func (f *AppFactory) GetPostService() domain.PostService {
	return f.postService
}

func (f *AppFactory) GetAuditLogService() domain.AuditLogService {
	return f.auditLogService
}
