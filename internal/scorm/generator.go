package scorm

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scormforge/scormforge/consts"
	"github.com/scormforge/scormforge/internal/config"
	"github.com/scormforge/scormforge/internal/model"
	"github.com/scormforge/scormforge/internal/render"
	"github.com/scormforge/scormforge/pkg/errors"
	"github.com/scormforge/scormforge/pkg/idgen"
	"github.com/scormforge/scormforge/pkg/logger"
)

// Generator runs the full build pipeline: the four independent generators in
// parallel, then the sequential assembler, then the read-back validator.
type Generator struct {
	renderer  *render.Renderer
	assembler *Assembler
	validator *Validator
}

// NewGenerator creates a generator from the tuning configuration
func NewGenerator(cfg *config.GeneratorConfig) *Generator {
	return &Generator{
		renderer:  render.NewRenderer(cfg.ExternalVideoHosts),
		assembler: NewAssembler(cfg.StreamChunkSize),
		validator: NewValidator(cfg.NavRecomputeMaxDistance),
	}
}

// BuildRequest describes one package build
type BuildRequest struct {
	Course  *model.CourseRequest
	Version Version
	// Artifacts are caller-supplied pre-rendered files; they take precedence
	// over internal generation for the paths they cover
	Artifacts []model.GeneratedArtifact
	// Media entries to include, conventionally under media/
	Media []MediaSource
	// SkipGeneration opts out of internal generation entirely; the build then
	// packages only the supplied artifacts and media
	SkipGeneration bool
}

// BuildResult is a finished, validated package
type BuildResult struct {
	Archive    []byte
	Report     *ValidationReport
	Identifier string
	BuildID    string
}

// Build runs one generation call. Output is deterministic for identical input
// apart from the freshly generated package identifier. On a failing
// validation report the archive bytes are discarded and the full diagnostic
// list is returned as the error.
func (g *Generator) Build(ctx context.Context, req *BuildRequest, sink *ProgressSink) (*BuildResult, error) {
	defer sink.Close()

	buildID := idgen.NewBuildID()
	log := logger.With(zap.String("build_id", buildID))

	if err := req.Course.Validate(); err != nil {
		return nil, err
	}
	version, err := ParseVersion(string(req.Version))
	if err != nil {
		// Reported before any generation work begins
		return nil, err
	}

	identifier := idgen.NewPackageIdentifier()
	log.Info("starting package build",
		zap.String("course", req.Course.Title),
		zap.String("scorm_version", string(version)),
		zap.String("identifier", identifier))

	input := &AssembleInput{
		Artifacts: req.Artifacts,
		Media:     req.Media,
	}

	if !req.SkipGeneration {
		sink.Emit(PhaseRender, 10, "rendering package artifacts")
		if err := g.renderAll(ctx, req.Course, version, identifier, input); err != nil {
			return nil, err
		}
	}

	sink.Emit(PhaseAssemble, 60, "assembling archive")
	archive, err := g.assembler.Assemble(ctx, input)
	if err != nil {
		return nil, err
	}

	sink.Emit(PhaseValidate, 85, "validating package")
	report := g.validator.Validate(archive)
	if report.HasErrors() {
		log.Error("package validation failed", zap.Int("errors", len(report.Errors)))
		// The bytes exist but are never surfaced past this point
		return nil, errors.New(errors.ErrCodeValidationFailed,
			"package validation failed:\n"+report.Summary()).WithDetails(report)
	}

	sink.Emit(PhaseDone, 100, "package ready")
	log.Info("package build complete", zap.Int("size_bytes", len(archive)))

	return &BuildResult{
		Archive:    archive,
		Report:     report,
		Identifier: identifier,
		BuildID:    buildID,
	}, nil
}

// Validate runs the output validator against finished archive bytes without
// building anything
func (g *Generator) Validate(archive []byte) *ValidationReport {
	return g.validator.Validate(archive)
}

// renderAll runs the four independent generators concurrently and fills the
// assembler input. The generators share nothing but the immutable course
// snapshot.
func (g *Generator) renderAll(ctx context.Context, course *model.CourseRequest, version Version, identifier string, input *AssembleInput) error {
	var pages []PageArtifact

	eg, _ := errgroup.WithContext(ctx)

	eg.Go(func() error {
		index, err := g.GenerateIndex(course)
		if err != nil {
			return err
		}
		rendered, err := g.GeneratePages(course)
		if err != nil {
			return err
		}
		input.Index = index
		pages = rendered
		return nil
	})
	eg.Go(func() error {
		styles, err := g.GenerateStyles(course)
		if err != nil {
			return err
		}
		input.Styles = styles
		return nil
	})
	eg.Go(func() error {
		navigation, err := g.GenerateNavigation(course)
		if err != nil {
			return err
		}
		input.Navigation = navigation
		return nil
	})
	eg.Go(func() error {
		// The manifest's file listing needs the page paths, which follow
		// deterministically from the course alone
		manifest, err := GenerateManifest(&ManifestOptions{
			Course:     course,
			Version:    version,
			Identifier: identifier,
			Pages:      pagePaths(course),
		})
		if err != nil {
			return err
		}
		input.Manifest = manifest
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	input.Pages = pages
	return nil
}

// pagePaths lists the archive-relative page paths in package order without
// rendering anything
func pagePaths(course *model.CourseRequest) []string {
	var paths []string
	if course.WelcomePage != nil {
		paths = append(paths, consts.PagesPrefix+"welcome.html")
	}
	if course.ObjectivesPage != nil {
		paths = append(paths, consts.PagesPrefix+"objectives.html")
	}
	for _, t := range course.Topics {
		paths = append(paths, consts.PagesPrefix+t.ID+".html")
	}
	if course.Assessment != nil {
		paths = append(paths, consts.PagesPrefix+"assessment.html")
	}
	return paths
}
