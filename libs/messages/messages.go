package messages

import (
	"encoding/json"
	"fmt"

	"github.com/diggerhq/returns/libs/resolver"
	"github.com/slack-go/slack"
)

const (
	// ActionIDFetch identifies the fetch button in block_actions payloads.
	ActionIDFetch = "returns_fetch"

	// slack rejects button values longer than this
	maxButtonValueLength = 2000
)

type Kind string

const (
	KindAssignment Kind = "assignment"
	KindExamScript Kind = "exam_script"
)

func ParseKind(value string) (Kind, error) {
	switch Kind(value) {
	case KindAssignment, KindExamScript:
		return Kind(value), nil
	default:
		return "", fmt.Errorf("unknown category kind: %v", value)
	}
}

// Category is what is being returned: an assignment number or an exam type.
// Label is passed through to the replies untouched.
type Category struct {
	Kind  Kind   `json:"k"`
	Label string `json:"l"`
}

func (c Category) String() string {
	switch c.Kind {
	case KindExamScript:
		return fmt.Sprintf("%v exam script", c.Label)
	default:
		return fmt.Sprintf("assignment %v", c.Label)
	}
}

// ButtonPayload is everything a fetch button needs. It travels in the
// button value, so it lives exactly as long as the published message.
type ButtonPayload struct {
	Category
	Link string `json:"u"`
}

func EncodeButton(p ButtonPayload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("could not encode button payload: %w", err)
	}
	if len(raw) > maxButtonValueLength {
		return "", fmt.Errorf("button payload is %d bytes, limit is %d", len(raw), maxButtonValueLength)
	}
	return string(raw), nil
}

func DecodeButton(value string) (ButtonPayload, error) {
	var p ButtonPayload
	if err := json.Unmarshal([]byte(value), &p); err != nil {
		return ButtonPayload{}, fmt.Errorf("could not decode button payload: %w", err)
	}
	if _, err := ParseKind(string(p.Kind)); err != nil {
		return ButtonPayload{}, err
	}
	return p, nil
}

func Mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}

// PublishMessage is the in-channel message carrying the fetch button.
func PublishMessage(p ButtonPayload) (slack.Msg, error) {
	value, err := EncodeButton(p)
	if err != nil {
		return slack.Msg{}, err
	}

	var prompt, buttonLabel string
	switch p.Kind {
	case KindExamScript:
		prompt = fmt.Sprintf("Press the button below to get your checked script of the %v exam.", p.Label)
		buttonLabel = fmt.Sprintf("Get %v Script", p.Label)
	default:
		prompt = fmt.Sprintf("Press the button below to get your checked copy of assignment %v.", p.Label)
		buttonLabel = fmt.Sprintf("Get Assignment %v", p.Label)
	}

	button := slack.NewButtonBlockElement(ActionIDFetch, value,
		slack.NewTextBlockObject(slack.PlainTextType, buttonLabel, false, false))
	button.Style = slack.StyleDanger

	return slack.Msg{
		ResponseType: "in_channel",
		Text:         prompt,
		Blocks: slack.Blocks{BlockSet: []slack.Block{
			slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, prompt, false, false), nil, nil),
			slack.NewActionBlock("returns_actions", button),
		}},
	}, nil
}

func FoundText(c Category, mention, link string) string {
	switch c.Kind {
	case KindExamScript:
		return fmt.Sprintf("%s's %v exam script is available at: %s", mention, c.Label, link)
	default:
		return fmt.Sprintf("%s's Assignment No. %v is available at: %s", mention, c.Label, link)
	}
}

// NotFoundText lists the possible causes without picking one, the resolver
// cannot tell them apart.
func NotFoundText(c Category) string {
	switch c.Kind {
	case KindExamScript:
		return fmt.Sprintf("%v exam script not found! Perhaps you were absent from the exam, "+
			"or your script has not been graded yet. It may also be a technical problem. "+
			"Otherwise, contact faculty.", c.Label)
	default:
		return "Assignment not found! Perhaps you did not submit the assignment, " +
			"or it has not been graded yet. It may also be a technical problem. " +
			"Otherwise, contact faculty."
	}
}

func MalformedLinkText(c Category) string {
	return fmt.Sprintf("Could not determine the folder for %v. Please contact faculty.", c)
}

func FailureText(c Category) string {
	return fmt.Sprintf("Something went wrong while fetching your %v. Please try again later or contact faculty.", c)
}

func ForOutcome(c Category, mention string, outcome resolver.Outcome) string {
	if outcome.IsFound() {
		return FoundText(c, mention, outcome.Record.Link)
	}
	return NotFoundText(c)
}

func UsageText(command string, kind Kind) string {
	switch kind {
	case KindExamScript:
		return fmt.Sprintf("Usage: `%s <exam type> <drive folder link>`", command)
	default:
		return fmt.Sprintf("Usage: `%s <assignment number> <drive folder link>`", command)
	}
}
