package cli

import (
	"errors"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/tacogips/kickstart/internal/resolver"
)

// surveyPrompter implements resolver.Prompter on a terminal.
type surveyPrompter struct {
	opts []survey.AskOpt
}

// newSurveyPrompter creates a prompter. Extra options (such as
// survey.WithStdio) are applied to every question.
func newSurveyPrompter(opts ...survey.AskOpt) *surveyPrompter {
	return &surveyPrompter{opts: opts}
}

// Input asks for free text. The validator runs inside survey so an invalid
// answer is reported inline and asked again.
func (p *surveyPrompter) Input(tp resolver.TextPrompt) (string, error) {
	var result string
	prompt := &survey.Input{
		Message: tp.Message,
		Default: tp.Default,
	}

	opts := append([]survey.AskOpt{}, p.opts...)
	if tp.Validate != nil {
		validate := tp.Validate
		normalize := tp.Normalize
		opts = append(opts, survey.WithValidator(func(val interface{}) error {
			if s, ok := val.(string); ok && normalize != nil {
				val = normalize(s)
			}
			return validate(val)
		}))
	}

	if err := survey.AskOne(prompt, &result, opts...); err != nil {
		return "", mapPromptError(err)
	}
	return result, nil
}

// Confirm asks a yes/no question.
func (p *surveyPrompter) Confirm(cp resolver.ConfirmPrompt) (bool, error) {
	var result bool
	prompt := &survey.Confirm{
		Message: cp.Message,
		Default: cp.Default,
	}
	if err := survey.AskOne(prompt, &result, p.opts...); err != nil {
		return false, mapPromptError(err)
	}
	return result, nil
}

// Select asks for one option and returns its index.
func (p *surveyPrompter) Select(sp resolver.SelectPrompt) (int, error) {
	var result int
	prompt := &survey.Select{
		Message: sp.Message,
		Options: sp.Options,
	}
	if sp.Default > 0 && sp.Default < len(sp.Options) {
		prompt.Default = sp.Default
	}
	if err := survey.AskOne(prompt, &result, p.opts...); err != nil {
		return 0, mapPromptError(err)
	}
	return result, nil
}

// mapPromptError turns an interrupt or a closed input into ErrCancelled.
func mapPromptError(err error) error {
	if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
		return resolver.ErrCancelled
	}
	return err
}
