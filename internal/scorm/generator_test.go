package scorm

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scormforge/scormforge/internal/config"
	"github.com/scormforge/scormforge/internal/model"
	"github.com/scormforge/scormforge/pkg/errors"
)

func buildCourse() *model.CourseRequest {
	return &model.CourseRequest{
		Title:    "Intro to Widgets",
		PassMark: 80,
		WelcomePage: &model.WelcomePage{
			Title:   "Welcome",
			Content: "Widgets ahead.",
		},
		Topics: []model.Topic{
			{
				ID:      "topic-1",
				Title:   "Widget Basics",
				Content: "<p>A widget has parts.</p>",
				KnowledgeCheck: &model.KnowledgeCheck{
					Enabled: true,
					Questions: []model.Question{
						{
							Type:          model.QuestionFillInBlank,
							Text:          "A widget has ____.",
							CorrectAnswer: "parts",
						},
					},
				},
			},
		},
		Assessment: &model.Assessment{
			Questions: []model.Question{
				{
					Type:          model.QuestionMultipleChoice,
					Text:          "Pick one",
					Options:       []string{"a", "b"},
					CorrectAnswer: "a",
				},
			},
		},
	}
}

func TestBuildEndToEnd(t *testing.T) {
	cfg := config.Default()
	g := NewGenerator(&cfg.Generator)

	result, err := g.Build(context.Background(), &BuildRequest{
		Course:  buildCourse(),
		Version: V12,
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.False(t, result.Report.HasErrors(), result.Report.Summary())
	assert.NotEmpty(t, result.BuildID)
	assert.Contains(t, result.Identifier, "course-")

	manifest := string(readArchiveEntry(t, result.Archive, "imsmanifest.xml"))
	assert.Contains(t, manifest, "<adlcp:masteryscore>80</adlcp:masteryscore>")
	assert.Contains(t, manifest, result.Identifier)
	assert.Contains(t, manifest, `<file href="pages/topic-1.html"/>`)

	topic := string(readArchiveEntry(t, result.Archive, "pages/topic-1.html"))
	assert.Contains(t, topic, "knowledge-check-container")
	assert.Contains(t, topic, "kc-fill-blank")
	assert.Contains(t, topic, `onclick="window.submitAllKnowledgeChecks('topic-1')"`)

	nav := string(readArchiveEntry(t, result.Archive, "scripts/navigation.js"))
	assert.Contains(t, nav, "'topic-1': true")
	assert.Contains(t, nav, "const PASS_MARK = 80;")

	names := archiveEntryNames(t, result.Archive)
	assert.Contains(t, names, "index.html")
	assert.Contains(t, names, "styles/main.css")
	assert.Contains(t, names, "pages/welcome.html")
	assert.Contains(t, names, "pages/assessment.html")
}

func TestBuildEmptyCourseValidates(t *testing.T) {
	cfg := config.Default()
	g := NewGenerator(&cfg.Generator)

	result, err := g.Build(context.Background(), &BuildRequest{
		Course:  &model.CourseRequest{Title: "Empty Shell", PassMark: 70},
		Version: V2004,
	}, nil)
	require.NoError(t, err)
	assert.False(t, result.Report.HasErrors(), result.Report.Summary())
}

func TestBuildDeterministicApartFromIdentifier(t *testing.T) {
	cfg := config.Default()
	g := NewGenerator(&cfg.Generator)

	first, err := g.Build(context.Background(), &BuildRequest{Course: buildCourse(), Version: V2004}, nil)
	require.NoError(t, err)
	second, err := g.Build(context.Background(), &BuildRequest{Course: buildCourse(), Version: V2004}, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.Identifier, second.Identifier)
	for _, name := range archiveEntryNames(t, first.Archive) {
		if name == "imsmanifest.xml" {
			continue
		}
		assert.Equal(t,
			readArchiveEntry(t, first.Archive, name),
			readArchiveEntry(t, second.Archive, name),
			name)
	}
}

func TestBuildWithMedia(t *testing.T) {
	payload := []byte("fake mp3 payload")
	path := filepath.Join(t.TempDir(), "audio-1.mp3")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	cfg := config.Default()
	g := NewGenerator(&cfg.Generator)

	result, err := g.Build(context.Background(), &BuildRequest{
		Course:  buildCourse(),
		Version: V12,
		Media: []MediaSource{
			{Path: "media/audio-1.mp3", File: path},
			{Path: "media/logo.png", Data: []byte{0x89, 0x50}},
		},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, payload, readArchiveEntry(t, result.Archive, "media/audio-1.mp3"))
	assert.Equal(t, []byte{0x89, 0x50}, readArchiveEntry(t, result.Archive, "media/logo.png"))
}

func TestBuildSkipGenerationRequiresContent(t *testing.T) {
	cfg := config.Default()
	g := NewGenerator(&cfg.Generator)

	_, err := g.Build(context.Background(), &BuildRequest{
		Course:         buildCourse(),
		Version:        V12,
		SkipGeneration: true,
	}, nil)
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNoContent, appErr.Code)
}

func TestBuildArtifactOverrideFailsValidation(t *testing.T) {
	cfg := config.Default()
	g := NewGenerator(&cfg.Generator)

	result, err := g.Build(context.Background(), &BuildRequest{
		Course:  buildCourse(),
		Version: V12,
		Artifacts: []model.GeneratedArtifact{
			{Path: "styles/main.css", Content: []byte(".content { min-height: 800px !important; }")},
		},
	}, nil)
	require.Error(t, err)
	assert.Nil(t, result)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidationFailed, appErr.Code)
	assert.Contains(t, appErr.Message, "min-height: 800px !important")
}

func TestBuildRejectsBadVersion(t *testing.T) {
	cfg := config.Default()
	g := NewGenerator(&cfg.Generator)

	_, err := g.Build(context.Background(), &BuildRequest{
		Course:  buildCourse(),
		Version: Version("3000"),
	}, nil)
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUnsupportedVersion, appErr.Code)
}

func TestBuildRejectsInvalidCourse(t *testing.T) {
	cfg := config.Default()
	g := NewGenerator(&cfg.Generator)

	course := buildCourse()
	course.PassMark = 150

	_, err := g.Build(context.Background(), &BuildRequest{Course: course, Version: V12}, nil)
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestBuildProgressEvents(t *testing.T) {
	cfg := config.Default()
	g := NewGenerator(&cfg.Generator)

	sink := NewProgressSink(16)
	_, err := g.Build(context.Background(), &BuildRequest{Course: buildCourse(), Version: V12}, sink)
	require.NoError(t, err)

	var phases []Phase
	for ev := range sink.Events() {
		phases = append(phases, ev.Phase)
		assert.GreaterOrEqual(t, ev.Percent, 0)
		assert.LessOrEqual(t, ev.Percent, 100)
	}
	assert.Equal(t, []Phase{PhaseRender, PhaseAssemble, PhaseValidate, PhaseDone}, phases)
}

func TestBuildClosesSinkOnFailure(t *testing.T) {
	cfg := config.Default()
	g := NewGenerator(&cfg.Generator)

	sink := NewProgressSink(16)
	_, err := g.Build(context.Background(), &BuildRequest{
		Course:  buildCourse(),
		Version: Version("3000"),
	}, sink)
	require.Error(t, err)

	// Channel must be closed so range terminates
	for range sink.Events() {
	}
}
