package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/sanalabo-jp/script-to-slides/script"
)

// Client calls the OpenAI Responses API for script analysis.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient builds a client for the given API key and model.
func NewClient(apiKey, model string) *Client {
	api := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{api: &api, model: model}
}

// themeAssignment is the wire shape for one theme: strict structured output
// cannot express a free-keyed map, so themes travel as a list and are folded
// into the map afterwards.
type themeAssignment struct {
	Speaker string `json:"speaker"`
	Theme   Theme  `json:"theme"`
}

type modelResponse struct {
	Themes []themeAssignment `json:"themes"`
	Slides []SlideAnalysis   `json:"slides"`
}

var analysisSchema = GenerateSchema[modelResponse]()

const analysisInstructions = `You are a presentation design expert. Analyze the given lecture/broadcast script and design slide themes and visual hints for creating PowerPoint slides.

For each speaker, design a slide theme: backgroundColor, primaryColor (text/heading) and accentColor as #hex values, a web-safe fontFamily (Arial, Georgia, Verdana, Trebuchet MS, Courier New), and a mood (professional | casual | dramatic | warm | serious | playful).

For each line, suggest a visual element reflecting the scene direction, not the dialogue: shapeType (rectangle | circle | arrow | star | diamond | triangle | cloud | heart | none), shapeColor as #hex, position (background | top-right | bottom-left | center-back | left-side | right-side) and optionally a single emoji.

Add supplementary text only when the dialogue contains technical terms or complex concepts that benefit from a 1-2 sentence explanation; keep the text empty otherwise.

Theme colors should reflect the speaker's personality and keep sufficient contrast between background and text.`

// buildAnalysisInput renders the script into the user message.
func buildAnalysisInput(slides []script.Slide) string {
	var b strings.Builder

	var speakers, roles []string
	seenSpeaker := map[string]bool{}
	seenRole := map[string]bool{}
	for _, s := range slides {
		if !seenSpeaker[s.Speaker.Name] {
			seenSpeaker[s.Speaker.Name] = true
			speakers = append(speakers, s.Speaker.Name)
		}
		if !seenRole[s.Speaker.Role] {
			seenRole[s.Speaker.Role] = true
			roles = append(roles, s.Speaker.Role)
		}
	}

	fmt.Fprintf(&b, "Speakers: %s\n", strings.Join(speakers, ", "))
	fmt.Fprintf(&b, "Roles: %s\n", strings.Join(roles, ", "))
	fmt.Fprintf(&b, "Total lines: %d\n\n", len(slides))

	for _, s := range slides {
		hint := ""
		if s.VisualHint != "" {
			hint = "(" + s.VisualHint + ") "
		}
		fmt.Fprintf(&b, "%s[%s]: %s%s\n", s.Speaker.Name, s.Speaker.Role, hint, s.Context)
	}
	return b.String()
}

// Analyze runs the model over the parsed slides and folds its output into a
// Result. The caller decides whether to fall back on error.
func (c *Client) Analyze(ctx context.Context, slides []script.Slide) (*Result, error) {
	if c == nil || c.api == nil {
		return nil, errors.New("analyze: client is nil")
	}
	if c.model == "" {
		return nil, errors.New("analyze: model is empty")
	}
	if len(slides) == 0 {
		return nil, errors.New("analyze: no slides")
	}

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "ScriptAnalysis",
			Schema:      analysisSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Slide themes and visual hints JSON"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(4000),
		Instructions:    openai.String(analysisInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(buildAnalysisInput(slides), responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := callWithRetry(ctx, c.api, params)
	if err != nil {
		return nil, err
	}

	var out modelResponse
	if err := decodeModelJSON(resp.OutputText(), &out); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	if len(out.Themes) == 0 || len(out.Slides) == 0 {
		return nil, errors.New("analyze: model returned no themes or slides")
	}

	result := &Result{
		Themes: make(map[string]Theme, len(out.Themes)),
		Slides: out.Slides,
	}
	for _, ta := range out.Themes {
		result.Themes[ta.Speaker] = ta.Theme
	}
	return result, nil
}

func callWithRetry(ctx context.Context, client *openai.Client, params responses.ResponseNewParams) (*responses.Response, error) {
	const maxRetries = 3
	rateLimitWaitTimes := []time.Duration{65 * time.Second, 100 * time.Second, 135 * time.Second}
	serverErrorWaitTimes := []time.Duration{5 * time.Second, 30 * time.Second, 60 * time.Second}

	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := client.Responses.New(ctx, params)
		if err != nil {
			if isRateLimitError(err) {
				if attempt < maxRetries-1 {
					select {
					case <-ctx.Done():
						return nil, ctx.Err()
					case <-time.After(rateLimitWaitTimes[attempt]):
					}
					continue
				}
			} else if isServerError(err) {
				if attempt < maxRetries-1 {
					select {
					case <-ctx.Done():
						return nil, ctx.Err()
					case <-time.After(serverErrorWaitTimes[attempt]):
					}
					continue
				}
			}
			return nil, err
		}
		return resp, nil
	}
	return nil, fmt.Errorf("failed after %d attempts due to OpenAI API issues", maxRetries)
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "server_error")
}
