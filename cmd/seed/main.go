package main

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"formhub/internal/config"
	"formhub/internal/db"
	"formhub/internal/model"
	"formhub/internal/repository"
)

const seedPassword = "password"

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	logger.Info().Msg("starting seed script")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connect")
	}

	if err := gormDB.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Form{},
		&model.FormSubmission{},
	); err != nil {
		logger.Fatal().Err(err).Msg("auto-migrate")
	}

	ctx := context.Background()

	adminRole := seedRole(ctx, logger, gormDB, "Admin", "admin")
	userRole := seedRole(ctx, logger, gormDB, "User", "user")

	userRepo := repository.NewUserRepository(gormDB)

	seedUser(ctx, logger, userRepo, "Admin", "admin@admin.com", adminRole, userRole)
	regular := seedUser(ctx, logger, userRepo, "User", "user@user.com", userRole)

	form := seedForm(ctx, logger, gormDB)
	if form != nil && regular != nil {
		seedSubmission(ctx, logger, gormDB, regular, form)
	}

	logger.Info().Msg("seed completed")
}

func seedRole(ctx context.Context, logger zerolog.Logger, gormDB *gorm.DB, name, slug string) *model.Role {
	role := &model.Role{Name: name, Slug: slug}
	if err := gormDB.WithContext(ctx).Where(model.Role{Slug: slug}).FirstOrCreate(role).Error; err != nil {
		logger.Fatal().Err(err).Str("slug", slug).Msg("seed role")
	}
	return role
}

func seedUser(ctx context.Context, logger zerolog.Logger, repo repository.UserRepository, name, email string, roles ...*model.Role) *model.User {
	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		logger.Info().Str("email", email).Msg("user already seeded")
		return existing
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Fatal().Err(err).Str("email", email).Msg("check user")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("hash password")
	}

	user := &model.User{Name: name, Email: email, PasswordHash: string(hashed)}
	if err := repo.Create(ctx, user); err != nil {
		logger.Fatal().Err(err).Str("email", email).Msg("create user")
	}
	for _, role := range roles {
		if err := repo.AttachRole(ctx, user, role); err != nil {
			logger.Fatal().Err(err).Str("email", email).Str("role", role.Slug).Msg("attach role")
		}
	}
	logger.Info().Str("email", email).Msg("user seeded")
	return user
}

func seedForm(ctx context.Context, logger zerolog.Logger, gormDB *gorm.DB) *model.Form {
	var existing model.Form
	err := gormDB.WithContext(ctx).Where("name = ?", "Contact Form").First(&existing).Error
	if err == nil {
		logger.Info().Msg("form already seeded")
		return &existing
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Fatal().Err(err).Msg("check form")
	}

	form := &model.Form{
		Name: "Contact Form",
		Fields: model.FieldList{
			{Label: "Name", Type: "text"},
			{Label: "Email", Type: "email"},
			{Label: "Message", Type: "textarea"},
		},
	}
	if err := gormDB.WithContext(ctx).Create(form).Error; err != nil {
		logger.Fatal().Err(err).Msg("create form")
	}
	logger.Info().Msg("form seeded")
	return form
}

func seedSubmission(ctx context.Context, logger zerolog.Logger, gormDB *gorm.DB, user *model.User, form *model.Form) {
	var count int64
	if err := gormDB.WithContext(ctx).Model(&model.FormSubmission{}).
		Where("user_id = ? AND form_id = ?", user.ID, form.ID).Count(&count).Error; err != nil {
		logger.Fatal().Err(err).Msg("check submission")
	}
	if count > 0 {
		logger.Info().Msg("submission already seeded")
		return
	}

	submission := &model.FormSubmission{
		UserID: user.ID,
		FormID: form.ID,
		Answers: model.AnswerSet{
			"Name":    "John Doe",
			"Email":   "johndoe@example.com",
			"Message": "Hello, this is a test submission!",
		},
	}
	if err := gormDB.WithContext(ctx).Create(submission).Error; err != nil {
		logger.Fatal().Err(err).Msg("create submission")
	}
	logger.Info().Msg("submission seeded")
}
