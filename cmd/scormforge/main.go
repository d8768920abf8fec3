// Package main is the entry point for the SCORMForge application.
// SCORMForge builds SCORM-conformant e-learning packages from structured
// course definitions.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scormforge/scormforge/consts"
	"github.com/scormforge/scormforge/internal/config"
	"github.com/scormforge/scormforge/internal/mediastore"
	"github.com/scormforge/scormforge/internal/model"
	"github.com/scormforge/scormforge/internal/project"
	"github.com/scormforge/scormforge/internal/scorm"
	"github.com/scormforge/scormforge/internal/server"
	"github.com/scormforge/scormforge/pkg/logger"
)

// Build information - set via ldflags during build
// These variables are linked to consts package for global access
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// init synchronizes build info to consts package for global access
func init() {
	consts.Version = Version
	consts.BuildTime = BuildTime
	consts.GitCommit = GitCommit
}

// configPath holds the path to the configuration file
var configPath string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "scormforge",
	Short: "SCORMForge - SCORM package builder",
	Long: `SCORMForge turns a structured course definition into a complete,
validated SCORM 1.2 / 2004 package ready for LMS upload.`,
}

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a SCORM package from a course definition",
	Long: `Build reads a course definition and writes a finished SCORM package.

The course comes either from a JSON file (--course) or from a saved project
(--project). The package is validated before it is written; a failing
validation aborts the build and prints the full diagnostic report.`,
	RunE: runBuild,
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <package.zip>",
	Short: "Validate an existing SCORM package",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SCORMForge API server",
	Run:   runServe,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("SCORMForge %s\n", Version)
		fmt.Printf("  Build Time: %s\n", BuildTime)
		fmt.Printf("  Git Commit: %s\n", GitCommit)
	},
}

func init() {
	// Disable auto-generated completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: config/scormforge.yaml)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	// Build command flags
	buildCmd.Flags().String("course", "", "course definition JSON file")
	buildCmd.Flags().String("project", "", "saved project name to build")
	buildCmd.Flags().StringP("scorm-version", "s", "2004", "SCORM version: 1.2, 2004, 2004.3, 2004.4")
	buildCmd.Flags().StringP("output", "o", "package.zip", "output package path")
	buildCmd.Flags().StringSlice("media", nil, "stored media IDs to include (requires --project)")

	// Serve command flags
	serveCmd.Flags().String("host", "", "server host (overrides config)")
	serveCmd.Flags().Int("port", 0, "server port (overrides config)")
	serveCmd.Flags().Bool("debug", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runBuild builds one package and writes it to the output path
func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	coursePath, _ := cmd.Flags().GetString("course")
	projectName, _ := cmd.Flags().GetString("project")
	scormVersion, _ := cmd.Flags().GetString("scorm-version")
	output, _ := cmd.Flags().GetString("output")
	mediaIDs, _ := cmd.Flags().GetStringSlice("media")

	course, projectID, err := resolveCourse(cfg, coursePath, projectName, &scormVersion)
	if err != nil {
		return err
	}

	var media []scorm.MediaSource
	if len(mediaIDs) > 0 {
		if projectID == "" {
			return fmt.Errorf("--media requires --project")
		}
		store := mediastore.NewStore(cfg.Storage.MediaDir)
		media, err = store.Resolve(projectID, mediaIDs)
		if err != nil {
			return err
		}
	}

	generator := scorm.NewGenerator(&cfg.Generator)
	sink := scorm.NewProgressSink(16)
	go func() {
		for ev := range sink.Events() {
			fmt.Fprintf(os.Stderr, "[%3d%%] %s: %s\n", ev.Percent, ev.Phase, ev.Message)
		}
	}()

	result, err := generator.Build(context.Background(), &scorm.BuildRequest{
		Course:  course,
		Version: scorm.Version(scormVersion),
		Media:   media,
	}, sink)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, result.Archive, 0o644); err != nil {
		return fmt.Errorf("failed to write package: %w", err)
	}

	fmt.Printf("Package written to %s (%d bytes)\n", output, len(result.Archive))
	fmt.Printf("  Identifier: %s\n", result.Identifier)
	fmt.Print(result.Report.Summary())
	return nil
}

// resolveCourse loads the course from a JSON file or a saved project. When a
// project supplies the course, its stored SCORM version wins unless the flag
// was set explicitly.
func resolveCourse(cfg *config.Config, coursePath, projectName string, scormVersion *string) (*model.CourseRequest, string, error) {
	switch {
	case coursePath != "" && projectName != "":
		return nil, "", fmt.Errorf("--course and --project are mutually exclusive")
	case coursePath != "":
		data, err := os.ReadFile(coursePath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read course file: %w", err)
		}
		var course model.CourseRequest
		if err := json.Unmarshal(data, &course); err != nil {
			return nil, "", fmt.Errorf("failed to parse course file: %w", err)
		}
		return &course, "", nil
	case projectName != "":
		store := project.NewStore(cfg.Storage.ProjectsDir)
		p, err := store.Load(store.PathFor(projectName))
		if err != nil {
			return nil, "", err
		}
		if p.ScormVersion != "" {
			*scormVersion = p.ScormVersion
		}
		return p.Course, p.Project.ID, nil
	default:
		return nil, "", fmt.Errorf("either --course or --project is required")
	}
}

// runValidate validates a finished package and exits non-zero on failure
func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	archive, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read package: %w", err)
	}

	generator := scorm.NewGenerator(&cfg.Generator)
	report := generator.Validate(archive)

	fmt.Print(report.Summary())
	if report.HasErrors() {
		os.Exit(1)
	}
	return nil
}

// runServe starts the SCORMForge server
func runServe(cmd *cobra.Command, args []string) {
	consts.SetStartedAt(time.Now())

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Override config with command line flags
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Server.Debug = true
		cfg.Logging.Level = "debug"
		cfg.Logging.Format = "text"
	}

	if err := logger.Init(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting SCORMForge",
		zap.String("version", Version),
	)

	srv := server.New(cfg)
	srv.SetupRoutes()

	if err := srv.Start(); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	logger.Info("SCORMForge server is running",
		zap.String("address", cfg.Server.Address()),
	)

	srv.WaitForShutdown()

	logger.Info("SCORMForge stopped")
}

// loadConfig loads configuration from the config file, falling back to
// defaults when the file does not exist
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath
	}
	return config.Load(path)
}
