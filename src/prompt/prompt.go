package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/jiaming2012/broker-client/src/models"
)

var ErrCancelled = errors.New("prompt cancelled")

// Prompter asks the user for one value at a time.
type Prompter interface {
	Input(ctx context.Context, message string) (string, error)
	Password(ctx context.Context, message string) (string, error)
	Select(ctx context.Context, message string, options []string) (string, error)
}

type surveyPrompter struct{}

func NewSurveyPrompter() Prompter {
	return &surveyPrompter{}
}

func (p *surveyPrompter) Input(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var out string
	if err := survey.AskOne(&survey.Input{Message: message}, &out, survey.WithValidator(survey.Required)); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (p *surveyPrompter) Password(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var out string
	if err := survey.AskOne(&survey.Password{Message: message}, &out, survey.WithValidator(survey.Required)); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (p *surveyPrompter) Select(ctx context.Context, message string, options []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var out string
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrCancelled
	}
	return err
}

// AskLoginForm prompts for every login field the form is missing. The broker is
// picked from the known brokers.
func AskLoginForm(ctx context.Context, p Prompter, form models.LoginForm) (models.LoginForm, error) {
	var err error

	if strings.TrimSpace(form.Username) == "" {
		if form.Username, err = p.Input(ctx, "Username"); err != nil {
			return models.LoginForm{}, fmt.Errorf("AskLoginForm: username: %w", err)
		}
	}

	if form.Password == "" {
		if form.Password, err = p.Password(ctx, "Password"); err != nil {
			return models.LoginForm{}, fmt.Errorf("AskLoginForm: password: %w", err)
		}
	}

	if strings.TrimSpace(form.Broker) == "" {
		var options []string
		for _, broker := range models.KnownBrokers() {
			options = append(options, string(broker))
		}

		if form.Broker, err = p.Select(ctx, "Broker", options); err != nil {
			return models.LoginForm{}, fmt.Errorf("AskLoginForm: broker: %w", err)
		}
	}

	return form, nil
}
