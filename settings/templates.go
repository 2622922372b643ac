package settings

import (
	"bytes"
	"os"
	"text/template"

	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/pkg/errors"
)

// ITemplateProvider defines template logic.
type ITemplateProvider interface {
	Process([]byte) ([]byte, error)
}

// Template engine provider.
type templateProvider struct {
	logger    common.ILoggerProvider
	functions template.FuncMap
}

// Contains data required for a new template.
type constructTemplate struct {
	Secrets common.ISecretProvider
	Logger  common.ILoggerProvider
}

// Constructs a new template engine.
func newTemplateProvider(ctor *constructTemplate) *templateProvider {
	p := &templateProvider{
		logger: ctor.Logger,
	}

	p.functions = template.FuncMap{
		"env": p.getEnvVariable,
	}

	if ctor.Secrets != nil {
		p.functions["sec"] = ctor.Secrets.Get
	}

	return p
}

// Process applies template functions to allow reading from
// environment variables and secrets store.
func (p *templateProvider) Process(rawFile []byte) ([]byte, error) {
	tpl, err := template.New("minerhub").Funcs(p.functions).Parse(string(rawFile))
	if err != nil {
		return nil, errors.Wrap(err, "parse template")
	}

	b := bytes.Buffer{}
	if err = tpl.Execute(&b, nil); err != nil {
		return nil, errors.Wrap(err, "execute template")
	}

	return b.Bytes(), nil
}

// Returns environment variable.
func (p *templateProvider) getEnvVariable(name string) string {
	p.logger.Debug("Template is requesting environment variable",
		common.LogNameToken, name, common.LogSystemToken, logSystem)
	return os.Getenv(name)
}
