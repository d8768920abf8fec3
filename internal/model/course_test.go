package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCourse() *CourseRequest {
	return &CourseRequest{
		Title:          "Intro to Widgets",
		PassMark:       80,
		NavigationMode: NavigationLinear,
		Topics: []Topic{
			{ID: "topic-1", Title: "Basics", Content: "<p>Hi</p>"},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	c := validCourse()
	require.NoError(t, c.Validate())
}

func TestValidate_Defaults(t *testing.T) {
	c := validCourse()
	c.NavigationMode = ""
	c.Display.FontSize = ""

	require.NoError(t, c.Validate())
	assert.Equal(t, NavigationLinear, c.NavigationMode)
	assert.Equal(t, FontMedium, c.Display.FontSize)
}

func TestValidate_EmptyTopicsIsLegal(t *testing.T) {
	c := validCourse()
	c.Topics = nil
	require.NoError(t, c.Validate())
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CourseRequest)
	}{
		{"empty title", func(c *CourseRequest) { c.Title = "  " }},
		{"pass mark above 100", func(c *CourseRequest) { c.PassMark = 101 }},
		{"negative pass mark", func(c *CourseRequest) { c.PassMark = -1 }},
		{"unknown navigation mode", func(c *CourseRequest) { c.NavigationMode = "spiral" }},
		{"unknown font size", func(c *CourseRequest) { c.Display.FontSize = "huge" }},
		{"empty topic id", func(c *CourseRequest) { c.Topics[0].ID = "" }},
		{"unsafe topic id", func(c *CourseRequest) { c.Topics[0].ID = "../etc/passwd" }},
		{"topic id with spaces", func(c *CourseRequest) { c.Topics[0].ID = "topic 1" }},
		{"duplicate topic ids", func(c *CourseRequest) {
			c.Topics = append(c.Topics, Topic{ID: "topic-1", Title: "Again"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCourse()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestValidate_Questions(t *testing.T) {
	c := validCourse()
	c.Topics[0].KnowledgeCheck = &KnowledgeCheck{
		Enabled: true,
		Questions: []Question{
			{Type: QuestionFillInBlank, Text: "The sky is ___.", CorrectAnswer: "blue"},
		},
	}
	require.NoError(t, c.Validate())

	// Unknown question type
	c.Topics[0].KnowledgeCheck.Questions[0].Type = "essay"
	assert.Error(t, c.Validate())

	// Multiple choice without options
	c.Topics[0].KnowledgeCheck.Questions[0] = Question{
		Type: QuestionMultipleChoice, Text: "Pick one", CorrectAnswer: "A",
	}
	assert.Error(t, c.Validate())

	// True/false gets default options
	c.Topics[0].KnowledgeCheck.Questions[0] = Question{
		Type: QuestionTrueFalse, Text: "Yes?", CorrectAnswer: "True",
	}
	require.NoError(t, c.Validate())
	assert.Equal(t, []string{"True", "False"}, c.Topics[0].KnowledgeCheck.Questions[0].Options)
}

func TestKnowledgeCheck_Active(t *testing.T) {
	var kc *KnowledgeCheck
	assert.False(t, kc.Active(), "nil check is inactive")

	kc = &KnowledgeCheck{Enabled: false, Questions: []Question{{Type: QuestionTrueFalse, Text: "?"}}}
	assert.False(t, kc.Active(), "disabled check is inactive")

	kc = &KnowledgeCheck{Enabled: true}
	assert.False(t, kc.Active(), "check without questions is inactive")

	kc = &KnowledgeCheck{Enabled: true, Questions: []Question{{Type: QuestionTrueFalse, Text: "?"}}}
	assert.True(t, kc.Active())
}

func TestCourseRequest_JSONRoundTrip(t *testing.T) {
	raw := `{
		"courseTitle": "Intro to Widgets",
		"passMark": 80,
		"navigationMode": "linear",
		"topics": [{
			"id": "topic-1",
			"title": "Basics",
			"content": "<p>Hi</p>",
			"knowledgeCheck": {
				"enabled": true,
				"questions": [{
					"type": "fill-in-the-blank",
					"text": "The sky is ___.",
					"correctAnswer": "blue"
				}]
			}
		}]
	}`

	var c CourseRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	require.NoError(t, c.Validate())

	assert.Equal(t, "Intro to Widgets", c.Title)
	require.Len(t, c.Topics, 1)
	assert.True(t, c.Topics[0].KnowledgeCheck.Active())
	assert.Equal(t, QuestionFillInBlank, c.Topics[0].KnowledgeCheck.Questions[0].Type)
}

func TestDisplaySettings_OptionalFlags(t *testing.T) {
	d := DisplaySettings{}
	assert.True(t, d.ShowProgressOrDefault())
	assert.True(t, d.ShowOutlineOrDefault())

	off := false
	d = DisplaySettings{ShowProgress: &off, ShowOutline: &off}
	assert.False(t, d.ShowProgressOrDefault())
	assert.False(t, d.ShowOutlineOrDefault())
}
