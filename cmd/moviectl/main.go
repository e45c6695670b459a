// Command moviectl administers the movie catalog database: create or drop the
// schema, seed sample data, import a CSV file and print a status report.
//
// Usage:
//
//	moviectl [flags] db_create|db_drop|db_seed|import [file]|status
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moviecatalog/internal/common"
	"moviecatalog/internal/config"
	"moviecatalog/internal/database"
	"moviecatalog/internal/logging"
	"moviecatalog/internal/models"
	"moviecatalog/internal/monitoring"
	"moviecatalog/internal/server"
	"moviecatalog/internal/services"
)

const usage = "usage: moviectl [flags] db_create|db_drop|db_seed|import [file]|status"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "moviectl:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cfg, rest, err := config.LoadConfig(args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return errors.New(usage)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	switch rest[0] {
	case "db_create":
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		fmt.Fprintln(out, "Database created.")
		return nil

	case "db_drop":
		if err := database.Drop(ctx, db); err != nil {
			return err
		}
		fmt.Fprintln(out, "Database dropped.")
		return nil

	case "db_seed", "import":
		if err := cfg.Validate(); err != nil {
			return err
		}
		svc, err := server.NewServices(cfg, db, logger)
		if err != nil {
			return err
		}
		if rest[0] == "db_seed" {
			return seed(ctx, svc, out)
		}
		path := cfg.ImportFile
		if len(rest) > 1 {
			path = rest[1]
		}
		res, err := svc.Importer.ImportPath(ctx, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Imported %s: %d rows, %d added, %d skipped, %d invalid\n",
			path, res.Rows, res.Added, res.Skipped, res.Invalid)
		return nil

	case "status":
		fmt.Fprintln(out, monitoring.NewService(time.Now(), db, cfg.ImportFile).AllText(ctx))
		return nil
	}

	return fmt.Errorf("unknown command %q\n%s", rest[0], usage)
}

// seed inserts the sample movie and test user. Records that already exist
// are left alone so seeding twice is harmless.
func seed(ctx context.Context, svc *server.Services, out io.Writer) error {
	_, err := svc.Movies.AddMovie(ctx, models.Movie{
		Name:     "Spider Man",
		Language: "Eng",
		Genre:    "Comedy",
		Runtime:  "120",
	})
	if err != nil && !errors.Is(err, common.ErrorConflict) {
		return fmt.Errorf("seed movie: %w", err)
	}

	_, err = svc.Users.Register(ctx, services.RegisterInput{
		FirstName: "Shapon",
		LastName:  "Sheikh",
		Email:     "test@test.com",
		Password:  "P@ssword",
	})
	if err != nil && !errors.Is(err, common.ErrorConflict) {
		return fmt.Errorf("seed user: %w", err)
	}

	fmt.Fprintln(out, "Database seeded.")
	return nil
}
