// Package prompt asks for fan base parameters on an interactive terminal.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/fanparts/fanbase"
)

// ErrCanceled is returned when the user interrupts the prompt.
var ErrCanceled = errors.New("prompt canceled")

// Question is a single numeric field to ask for.
type Question struct {
	Message string
	Help    string
	Default string
}

// Asker answers questions. Validate is applied to the answer before it is
// accepted.
type Asker interface {
	Ask(ctx context.Context, q Question, validate func(string) error) (string, error)
}

// SurveyAsker asks on the process terminal.
type SurveyAsker struct{}

// Ask implements Asker.
func (SurveyAsker) Ask(ctx context.Context, q Question, validate func(string) error) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: q.Message,
		Help:    q.Help,
		Default: q.Default,
	}
	err := survey.AskOne(prompt, &out, survey.WithValidator(func(ans interface{}) error {
		s, _ := ans.(string)
		return validate(s)
	}))
	if errors.Is(err, terminal.InterruptErr) {
		return "", ErrCanceled
	}
	return out, err
}

type field struct {
	msg  string
	help string
	ptr  func(p *fanbase.Params) *float64
}

var fields = []field{
	{"Body diameter [mm]", "Diameter of the whole base.", func(p *fanbase.Params) *float64 { return &p.BodyDiameter }},
	{"Inner thickness [mm]", "Thickness of the inner disc.", func(p *fanbase.Params) *float64 { return &p.InnerThickness }},
	{"Outer thickness [mm]", "How far the outer ring protrudes below the disc.", func(p *fanbase.Params) *float64 { return &p.OuterThickness }},
	{"Outer ring width [mm]", "Radial width of the outer ring.", func(p *fanbase.Params) *float64 { return &p.OuterRingWidth }},
	{"Post outer diameter [mm]", "Screw post outer diameter.", func(p *fanbase.Params) *float64 { return &p.PostOuterDiameter }},
	{"Post inner diameter [mm]", "Screw hole diameter.", func(p *fanbase.Params) *float64 { return &p.PostInnerDiameter }},
	{"Post height [mm]", "Height of the posts below the disc.", func(p *fanbase.Params) *float64 { return &p.PostHeight }},
	{"Triangle side [mm]", "Distance between screw post centers.", func(p *fanbase.Params) *float64 { return &p.TriangleSide }},
}

// Params asks for every field of the parameters, offering defaults as the
// starting values. The answers are validated as a whole before returning.
func Params(ctx context.Context, a Asker, defaults fanbase.Params) (fanbase.Params, error) {
	p := defaults
	for _, f := range fields {
		v := f.ptr(&p)
		ans, err := a.Ask(ctx, Question{
			Message: f.msg,
			Help:    f.help,
			Default: strconv.FormatFloat(*v, 'g', -1, 64),
		}, validPositive)
		if err != nil {
			return fanbase.Params{}, err
		}
		*v, err = parsePositive(ans)
		if err != nil {
			return fanbase.Params{}, fmt.Errorf("%s: %w", f.msg, err)
		}
	}
	if err := p.Validate(); err != nil {
		return fanbase.Params{}, err
	}
	return p, nil
}

func validPositive(s string) error {
	_, err := parsePositive(s)
	return err
}

func parsePositive(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("%g must be positive", v)
	}
	return v, nil
}
