// Package model defines the course data model consumed by the SCORM
// generators. All types are plain data; behavior is limited to boundary
// validation and normalization so downstream generators operate on known-good
// shapes and never re-derive presence logic.
package model

import (
	"fmt"
	"strings"

	"github.com/scormforge/scormforge/pkg/errors"
)

// NavigationMode controls how learners may move between pages
type NavigationMode string

// Navigation modes
const (
	NavigationLinear NavigationMode = "linear"
	NavigationFree   NavigationMode = "free"
)

// FontSize is the display font size selection
type FontSize string

// Font sizes
const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// QuestionType identifies the question variant
type QuestionType string

// Question types
const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionFillInBlank    QuestionType = "fill-in-the-blank"
)

// MediaType identifies the media variant
type MediaType string

// Media types
const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
)

// CourseRequest is the typed aggregate describing one course build.
// It is created fresh per generation request and discarded afterwards.
type CourseRequest struct {
	Title          string          `json:"courseTitle"`
	Description    string          `json:"courseDescription,omitempty"`
	WelcomePage    *WelcomePage    `json:"welcomePage,omitempty"`
	ObjectivesPage *ObjectivesPage `json:"learningObjectivesPage,omitempty"`
	Topics         []Topic         `json:"topics"`
	Assessment     *Assessment     `json:"assessment,omitempty"`
	PassMark       int             `json:"passMark"`
	NavigationMode NavigationMode  `json:"navigationMode"`
	AllowRetake    bool            `json:"allowRetake"`
	Display        DisplaySettings `json:"display"`
}

// DisplaySettings holds accessibility and layout options
type DisplaySettings struct {
	FontSize     FontSize `json:"fontSize,omitempty"`
	ShowProgress *bool    `json:"showProgress,omitempty"`
	ShowOutline  *bool    `json:"showOutline,omitempty"`
	Printable    bool     `json:"printable,omitempty"`
}

// Topic is one course topic page. The ID doubles as the page filename stem
// and the DOM element id, so it must be unique and filesystem/URL-safe.
type Topic struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Content        string          `json:"content"`
	KnowledgeCheck *KnowledgeCheck `json:"knowledgeCheck,omitempty"`
	AudioFile      string          `json:"audioFile,omitempty"`
	CaptionFile    string          `json:"captionFile,omitempty"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	Media          []MediaItem     `json:"media,omitempty"`
}

// KnowledgeCheck is an inline gating quiz attached to a topic
type KnowledgeCheck struct {
	Enabled   bool       `json:"enabled"`
	Questions []Question `json:"questions"`
}

// Active reports whether the knowledge check should be rendered and gated on.
// A disabled check or one without questions is treated as absent everywhere
// downstream.
func (kc *KnowledgeCheck) Active() bool {
	return kc != nil && kc.Enabled && len(kc.Questions) > 0
}

// Question is a tagged variant over the supported question kinds. The index
// within the owning list is the stable client-side identity.
type Question struct {
	Type              QuestionType `json:"type"`
	Text              string       `json:"text"`
	Options           []string     `json:"options,omitempty"`
	CorrectAnswer     string       `json:"correctAnswer"`
	Explanation       string       `json:"explanation,omitempty"`
	CorrectFeedback   string       `json:"correctFeedback,omitempty"`
	IncorrectFeedback string       `json:"incorrectFeedback,omitempty"`
}

// MediaItem is one media reference attached to a page
type MediaItem struct {
	ID              string    `json:"id"`
	Type            MediaType `json:"type"`
	URL             string    `json:"url"`
	Title           string    `json:"title"`
	EmbedURL        string    `json:"embedUrl,omitempty"`
	IsExternalVideo *bool     `json:"isYouTube,omitempty"`
}

// WelcomePage is the optional opening page
type WelcomePage struct {
	Title           string      `json:"title"`
	Content         string      `json:"content"`
	StartButtonText string      `json:"startButtonText"`
	AudioFile       string      `json:"audioFile,omitempty"`
	CaptionFile     string      `json:"captionFile,omitempty"`
	ImageURL        string      `json:"imageUrl,omitempty"`
	Media           []MediaItem `json:"media,omitempty"`
}

// ObjectivesPage is the optional learning objectives page
type ObjectivesPage struct {
	Objectives  []string    `json:"objectives"`
	AudioFile   string      `json:"audioFile,omitempty"`
	CaptionFile string      `json:"captionFile,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Media       []MediaItem `json:"media,omitempty"`
}

// Assessment is the optional end-of-course assessment
type Assessment struct {
	Questions   []Question  `json:"questions"`
	AudioFile   string      `json:"audioFile,omitempty"`
	CaptionFile string      `json:"captionFile,omitempty"`
	Media       []MediaItem `json:"media,omitempty"`
}

// Validate checks and normalizes the request at the model boundary.
// After Validate returns nil, generators may assume: pass mark is a
// percentage, navigation mode is one of the two literals, topic ids are
// unique and safe, and every question carries a known type.
func (c *CourseRequest) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return errors.ErrValidation("course title is required")
	}
	if c.PassMark < 0 || c.PassMark > 100 {
		return errors.ErrValidation(fmt.Sprintf("pass mark must be 0-100, got %d", c.PassMark))
	}

	switch c.NavigationMode {
	case NavigationLinear, NavigationFree:
	case "":
		c.NavigationMode = NavigationLinear
	default:
		return errors.ErrValidation(fmt.Sprintf("unknown navigation mode: %s", c.NavigationMode))
	}

	switch c.Display.FontSize {
	case FontSmall, FontMedium, FontLarge:
	case "":
		c.Display.FontSize = FontMedium
	default:
		return errors.ErrValidation(fmt.Sprintf("unknown font size: %s", c.Display.FontSize))
	}

	seen := make(map[string]struct{}, len(c.Topics))
	for i := range c.Topics {
		topic := &c.Topics[i]
		if err := validateTopicID(topic.ID); err != nil {
			return err
		}
		if _, dup := seen[topic.ID]; dup {
			return errors.ErrValidation(fmt.Sprintf("duplicate topic id: %s", topic.ID))
		}
		seen[topic.ID] = struct{}{}

		if topic.KnowledgeCheck != nil {
			for qi := range topic.KnowledgeCheck.Questions {
				if err := validateQuestion(&topic.KnowledgeCheck.Questions[qi]); err != nil {
					return errors.ErrValidation(fmt.Sprintf("topic %s question %d: %v", topic.ID, qi, err))
				}
			}
		}
	}

	if c.Assessment != nil {
		for qi := range c.Assessment.Questions {
			if err := validateQuestion(&c.Assessment.Questions[qi]); err != nil {
				return errors.ErrValidation(fmt.Sprintf("assessment question %d: %v", qi, err))
			}
		}
	}

	return nil
}

// validateTopicID enforces filesystem/URL/DOM-id safety for topic ids
func validateTopicID(id string) error {
	if id == "" {
		return errors.ErrValidation("topic id is required")
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return errors.ErrValidation(fmt.Sprintf("topic id %q contains unsafe character %q", id, r))
		}
	}
	return nil
}

// validateQuestion checks the tagged variant constraints
func validateQuestion(q *Question) error {
	switch q.Type {
	case QuestionMultipleChoice:
		if len(q.Options) == 0 {
			return fmt.Errorf("multiple-choice question requires options")
		}
	case QuestionTrueFalse:
		if len(q.Options) == 0 {
			q.Options = []string{"True", "False"}
		}
	case QuestionFillInBlank:
		// No options; answer is matched against typed input
	default:
		return fmt.Errorf("unknown question type: %s", q.Type)
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question text is required")
	}
	return nil
}

// ShowProgress resolves the optional flag, defaulting to true
func (d *DisplaySettings) ShowProgressOrDefault() bool {
	if d.ShowProgress == nil {
		return true
	}
	return *d.ShowProgress
}

// ShowOutlineOrDefault resolves the optional flag, defaulting to true
func (d *DisplaySettings) ShowOutlineOrDefault() bool {
	if d.ShowOutline == nil {
		return true
	}
	return *d.ShowOutline
}
