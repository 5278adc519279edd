package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/classtrack/internal/repository"
	"github.com/noah-isme/classtrack/internal/service"
	"github.com/noah-isme/classtrack/pkg/config"
	"github.com/noah-isme/classtrack/pkg/database"
	"github.com/noah-isme/classtrack/pkg/logger"
	"github.com/noah-isme/classtrack/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewSQLite(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to open database", "error", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := repository.EnsureSchema(ctx, db); err != nil {
		logr.Sugar().Fatalw("failed to prepare schema", "error", err)
	}

	validate := validator.New()

	users := repository.NewUserRepository(db)
	classes := repository.NewClassRepository(db)
	students := repository.NewStudentRepository(db)
	reports := repository.NewReportRepository(db)
	legacy := repository.NewLegacyRepository(db)

	auth := service.NewAuthService(users, validate, logr, service.AuthConfig{
		MinPasswordLength: cfg.Auth.MinPasswordLength,
	})
	migration := service.NewMigrationService(legacy, classes, logr)
	reportSvc := service.NewReportService(reports, students, logr)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "register":
		err = runRegister(ctx, auth, os.Args[2:])
	case "migrate":
		err = runMigrate(ctx, migration, os.Args[2:])
	case "export":
		err = runExport(ctx, reportSvc, cfg, logr, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logr.Sugar().Fatalw("command failed", "command", os.Args[1], "error", err)
	}
}

func runRegister(ctx context.Context, auth *service.AuthService, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "teacher display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	user, err := auth.Register(ctx, service.RegisterRequest{
		Name:     *name,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}
	fmt.Printf("registered %s (id %d)\n", user.Email, user.ID)
	return nil
}

func runMigrate(ctx context.Context, migration *service.MigrationService, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	teacherID := fs.Int64("teacher", 0, "teacher id to receive orphaned records")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return migration.Run(ctx, *teacherID)
}

func runExport(ctx context.Context, reports *service.ReportService, cfg *config.Config, logr *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	kind := fs.String("report", "attendance", "report to export: attendance, completion, student or all")
	classID := fs.Int64("class", 0, "class id (attendance, completion and all)")
	studentID := fs.Int64("student", 0, "student id (student report, optional with all)")
	format := fs.String("format", "csv", "output format: csv or pdf")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		return err
	}
	exports := service.NewExportService(reports, store, logr)

	if *kind == "all" {
		return runExportBatch(ctx, exports, logr, *classID, *studentID, service.ExportFormat(*format))
	}

	var path string
	switch *kind {
	case "attendance":
		path, err = exports.ExportClassAttendance(ctx, *classID, service.ExportFormat(*format))
	case "completion":
		path, err = exports.ExportClassAssignmentCompletion(ctx, *classID, service.ExportFormat(*format))
	case "student":
		path, err = exports.ExportStudentReport(ctx, *studentID, service.ExportFormat(*format))
	default:
		return fmt.Errorf("unknown report %q", *kind)
	}
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// runExportBatch renders every report for the class through the background
// queue so the individual renders overlap.
func runExportBatch(ctx context.Context, exports *service.ExportService, logr *zap.Logger, classID, studentID int64, format service.ExportFormat) error {
	queue := service.NewExportQueue(exports, service.ExportQueueConfig{Workers: 2}, logr)
	queue.Start(ctx)
	defer queue.Stop()

	requests := []service.ExportRequest{
		{Kind: service.ExportAttendance, TargetID: classID, Format: format},
		{Kind: service.ExportCompletion, TargetID: classID, Format: format},
	}
	if studentID > 0 {
		requests = append(requests, service.ExportRequest{Kind: service.ExportStudent, TargetID: studentID, Format: format})
	}
	for _, req := range requests {
		if err := queue.Enqueue(req); err != nil {
			return err
		}
	}
	queue.Drain()
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: classtrack <register|migrate|export> [flags]")
}
