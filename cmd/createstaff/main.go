// Command createstaff adds an administrator account. Staff accounts carry no
// employee profile and land on the admin dashboard after login.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"

	"github.com/SkShizan/clg-project/internal/config"
	"github.com/SkShizan/clg-project/internal/domain/auth"
	"github.com/SkShizan/clg-project/internal/pkg/database"
	"github.com/SkShizan/clg-project/internal/pkg/jwt"
	"github.com/SkShizan/clg-project/internal/repository/postgresql"
	serviceAuth "github.com/SkShizan/clg-project/internal/service/auth"
)

func main() {
	var req auth.CreateAccountRequest
	flag.StringVar(&req.Username, "username", "", "login name (required)")
	flag.StringVar(&req.Password, "password", "", "password (required)")
	flag.StringVar(&req.FirstName, "first-name", "", "first name")
	flag.StringVar(&req.LastName, "last-name", "", "last name")
	flag.Parse()
	req.IsStaff = true

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal("Error applying migrations: ", err)
	}

	authService := serviceAuth.NewAuthService(
		postgresql.NewAccountRepository(db),
		postgresql.NewEmployeeRepository(db),
		postgresql.NewRefreshTokenRepository(db),
		jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration),
	)

	acc, err := authService.CreateAccount(ctx, req)
	if err != nil {
		log.Fatal("Error creating staff account: ", err)
	}
	slog.Info("Staff account created", "account_id", acc.ID, "username", acc.Username)
}
